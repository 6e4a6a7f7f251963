// Package templates embeds the HTML templates used to render documents
package templates

import "embed"

//go:embed *.html
var FS embed.FS

const Bill = "bill.html"
