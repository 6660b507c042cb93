package views

import (
	"github.com/a-h/templ"

	"github.com/luisacerv/devblog/share"
)

// ShareButtons renders one share link per target, each fed the same payload.
func ShareButtons(p share.Payload) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "class", "share")
		for _, t := range share.Targets() {
			h.elem("a", t.Label,
				"class", "share-button share-"+t.Name,
				"href", t.Href(p),
				"target", "_blank",
				"rel", "noopener noreferrer",
				"aria-label", "Share on "+t.Label,
			)
		}
		h.close("div")
	})
}
