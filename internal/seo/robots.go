package seo

import (
	"strings"
)

// Robots allows crawling of the whole site and points crawlers to the sitemap.
func Robots(baseURL string) string {
	sb := strings.Builder{}
	sb.WriteString("User-Agent: *\n")
	sb.WriteString("Allow: /\n")
	sb.WriteString("Crawl-delay: 0\n")
	sb.WriteString("\n")
	sb.WriteString("Sitemap: ")
	sb.WriteString(strings.TrimSuffix(baseURL, "/"))
	sb.WriteString("/sitemap.xml\n")

	return sb.String()
}
