package book

import (
	"context"
)

// defaultPageSize is the page size used when listing transactions.
const defaultPageSize = 100

// Transactions returns an iterator over the transactions matching a
// query. Pages are fetched on demand; nothing is cached on the Book.
func (b *Book) Transactions(query string) *Iterator {
	return &Iterator{
		book:     b,
		query:    query,
		pageSize: defaultPageSize,
	}
}

// Iterator walks a transaction listing page by page.
type Iterator struct {
	book     *Book
	query    string
	pageSize int

	cursor string
	buf    []*Transaction
	pos    int
	done   bool
}

// Next returns the next transaction, fetching the next page when the
// current one is exhausted. It returns nil, nil once the listing ends.
func (it *Iterator) Next(ctx context.Context) (*Transaction, error) {
	for it.pos >= len(it.buf) {
		if it.done {
			return nil, nil
		}
		if err := it.fetchPage(ctx); err != nil {
			return nil, err
		}
	}
	t := it.buf[it.pos]
	it.pos++
	return t, nil
}

func (it *Iterator) fetchPage(ctx context.Context) error {
	list, err := it.book.svc.Transactions.ListTransactions(ctx, it.book.id, it.query, it.pageSize, it.cursor)
	if err != nil {
		return err
	}

	buf := make([]*Transaction, len(list.Items))
	for i, p := range list.Items {
		buf[i] = &Transaction{book: it.book, payload: p}
	}
	it.buf = buf
	it.pos = 0
	it.cursor = list.Cursor
	if list.Cursor == "" {
		it.done = true
	}
	return nil
}

// All drains the iterator and returns the remaining transactions.
func (it *Iterator) All(ctx context.Context) ([]*Transaction, error) {
	var result []*Transaction
	for {
		t, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return result, nil
		}
		result = append(result, t)
	}
}
