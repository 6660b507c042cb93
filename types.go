package devblog

import (
	"github.com/a-h/templ"

	"github.com/luisacerv/devblog/posts"
	"github.com/luisacerv/devblog/share"
	"github.com/luisacerv/devblog/views"
)

// ViewFuncs holds the templ components the App renders pages with. Any
// nil field falls back to the views package.
type ViewFuncs struct {
	Home        func(entries []posts.Entry, activeTag string, tags []string) templ.Component
	Post        func(entry posts.Entry, doc posts.Document, payload share.Payload, related []posts.Entry) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

func (v *ViewFuncs) fillDefaults(site views.SiteConfig) {
	if v.Home == nil {
		v.Home = func(entries []posts.Entry, activeTag string, tags []string) templ.Component {
			return views.Home(site, entries, activeTag, tags)
		}
	}
	if v.Post == nil {
		v.Post = func(entry posts.Entry, doc posts.Document, payload share.Payload, related []posts.Entry) templ.Component {
			return views.Post(site, entry, doc, payload, related)
		}
	}
	if v.NotFound == nil {
		v.NotFound = func() templ.Component { return views.NotFound(site) }
	}
	if v.ServerError == nil {
		v.ServerError = func() templ.Component { return views.ServerError(site) }
	}
}
