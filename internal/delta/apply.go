package delta

import (
	"strings"

	"github.com/iudanet/deltasync/internal/models"
)

// Apply returns a copy of previous with changes applied in order.
// previous is not modified; a nil previous starts from an empty document.
func Apply(previous models.Document, changes []models.StateChange) models.Document {
	doc := Clone(previous)
	if doc == nil {
		doc = models.Document{}
	}

	for _, change := range changes {
		path := strings.Split(change.Field, Separator)
		switch change.ChangeType {
		case models.ChangeDelete:
			deletePath(doc, path)
		default:
			setPath(doc, path, cloneValue(change.NewValue))
		}
	}
	return doc
}

func setPath(doc models.Document, path []string, value any) {
	for _, segment := range path[:len(path)-1] {
		next, ok := asDocument(doc[segment])
		if !ok {
			next = models.Document{}
			doc[segment] = next
		}
		doc = next
	}
	doc[path[len(path)-1]] = value
}

// deletePath удаляет лист и опустевшие после этого родительские документы
func deletePath(doc models.Document, path []string) bool {
	if len(path) == 1 {
		if _, ok := doc[path[0]]; !ok {
			return false
		}
		delete(doc, path[0])
		return true
	}

	child, ok := asDocument(doc[path[0]])
	if !ok {
		return false
	}
	if deletePath(child, path[1:]) && len(child) == 0 {
		delete(doc, path[0])
	}
	return true
}

// Clone делает глубокую копию документа.
func Clone(doc models.Document) models.Document {
	if doc == nil {
		return nil
	}
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if d, ok := asDocument(v); ok {
		return Clone(d)
	}
	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = cloneValue(x)
		}
		return out
	}
	return v
}
