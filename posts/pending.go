package posts

import "context"

// Pending is the single-shot result of Entry.Load. It resolves exactly once.
type Pending struct {
	done chan struct{}
	doc  Document
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(doc Document, err error) {
	p.doc = doc
	p.err = err
	close(p.done)
}

// Done is closed once the document (or its error) is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the document resolves or ctx is done. Giving up on
// ctx does not cancel the retrieval itself.
func (p *Pending) Await(ctx context.Context) (Document, error) {
	select {
	case <-p.done:
		return p.doc, p.err
	case <-ctx.Done():
		return Document{}, ctx.Err()
	}
}

// Ready reports whether the retrieval has finished, without blocking.
func (p *Pending) Ready() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
