package views

import (
	"strings"

	"github.com/a-h/templ"
)

const (
	// AvatarURL is where the author's avatar is served.
	AvatarURL = "/public/avatar.jpg"
	// BioText is the author introduction shown on the home page and under
	// every post.
	BioText = "Hello, there I am Luis Acerv, a full stack developer and " +
		"entrepreneur. Welcome! this is a place I am building for you, here I " +
		"will publish my blog posts, tutorials, and courses. I hope you enjoy " +
		"the content and I will be happy to help you in your journey as a " +
		"developer."

	bioBaseClass = "bio"
)

// BioClass returns the class attribute for the bio container: the base
// class, followed by className when one is given.
func BioClass(className string) string {
	className = strings.TrimSpace(className)
	if className == "" {
		return bioBaseClass
	}
	return bioBaseClass + " " + className
}

// Bio renders the author avatar and introduction.
func Bio(className string) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "class", BioClass(className))
		h.open("img", "src", AvatarURL, "alt", "Me", "width", "80", "height", "80")
		h.elem("p", BioText)
		h.close("div")
	})
}
