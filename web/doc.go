// Package web renders the public site: the infinite-scroll gallery, the
// illustration detail and download routes, the about page and the sitemap.
// Templates and static assets are embedded in the binary.
package web
