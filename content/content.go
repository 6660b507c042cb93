// Package content ships the blog's own articles inside the binary.
package content

import (
	"embed"
	"path"

	"github.com/luisacerv/devblog/posts"
)

//go:embed posts
var files embed.FS

type article struct {
	dir     string
	title   string
	tags    []string
	spoiler string
}

var articles = []article{
	{
		dir:     "2019-08-06-how-to-create-a-bitcoin-api-gql",
		title:   "How to create a simple Bitcoin API with Node.js & GraphQL",
		tags:    []string{"bitcoin", "graphql", "tutorial", "javascript", "crypto"},
		spoiler: "Learn How to create a bitcoin API using GraphqQL",
	},
	{
		dir:   "2019-08-04-problem_solvers",
		title: "Problem solvers always are the winners",
		tags:  []string{"entrepreneur", "developers", "life"},
		spoiler: "“The reward for being a good problem solver is to be heaped with more and more difficult problems to solve.” \n" +
			" Constancy, dedication and commitment. It is not easy to do what we want, there are many obstacles everywhere, but the main thing is oneself.",
	},
}

// Entries returns the embedded articles, newest first.
func Entries() []posts.Entry {
	entries := make([]posts.Entry, 0, len(articles))
	for _, a := range articles {
		slug, date := posts.SlugFromDir(a.dir)
		entries = append(entries, posts.Entry{
			Slug:    slug,
			Title:   a.title,
			Date:    date,
			Tags:    append([]string(nil), a.tags...),
			Spoiler: a.spoiler,
			Content: posts.FSLoader{FS: files, Path: path.Join("posts", a.dir, "document.mdx")},
		})
	}
	return entries
}
