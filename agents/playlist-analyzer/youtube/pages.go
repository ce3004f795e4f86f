package youtube

import "context"

// pageFunc fetches the page identified by token and returns its items along
// with the continuation token for the next page ("" when exhausted).
type pageFunc[T any] func(ctx context.Context, token string) (items []T, next string, err error)

// collectPages follows continuation tokens until the server omits one. Items
// keep page order and within-page order. Any page error discards everything
// gathered so far.
func collectPages[T any](ctx context.Context, fetch pageFunc[T]) ([]T, error) {
	var all []T
	token := ""
	for {
		items, next, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next == "" {
			return all, nil
		}
		token = next
	}
}

// chunkIDs splits ids into consecutive chunks of at most size elements.
func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = len(ids)
	}

	var chunks [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}

// fetchBatched issues one request per chunk, in order, and concatenates the
// results. A failing chunk discards the chunks already fetched.
func fetchBatched[T any](ctx context.Context, ids []string, size int, fetch func(ctx context.Context, chunk []string) ([]T, error)) ([]T, error) {
	var all []T
	for _, chunk := range chunkIDs(ids, size) {
		items, err := fetch(ctx, chunk)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}
