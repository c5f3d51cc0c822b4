package mdx

import "regexp"

var markdownImage = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)

// OptimizeImages rewrites Markdown images into the site's Image component so
// the page layer can serve sized, lazily loaded pictures.
func OptimizeImages(content string) string {
	return markdownImage.ReplaceAllString(content,
		`<Image src="$2" alt="$1" width={800} height={400} className="rounded-lg" />`)
}
