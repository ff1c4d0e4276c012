// Package delta вычисляет изменения сущностей на уровне полей.
//
// Документы сравниваются по листьям: вложенные документы разворачиваются в
// ключи вида "preferences.theme", массивы считаются непрозрачными значениями.
// Порядок изменений детерминирован (ключи отсортированы), поскольку от него
// зависят и полезная нагрузка, и усечение по размеру.
package delta

import (
	"sort"
	"strings"
	"time"

	"github.com/iudanet/deltasync/internal/models"
)

// Separator разделитель сегментов пути поля.
const Separator = "."

// deniedFragments подстроки имен полей, которые никогда не попадают в дельты
var deniedFragments = []string{"password", "token", "secret", "internal"}

// IsDenied reports whether the field path must be kept out of deltas.
// Match is a case-insensitive substring check on the full path.
func IsDenied(field string) bool {
	lower := strings.ToLower(field)
	for _, fragment := range deniedFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// ComputeChanges returns the field-level changes turning previous into current.
func ComputeChanges(previous, current models.Document) []models.StateChange {
	return ComputeChangesAt(previous, current, time.Now().UnixMilli())
}

// ComputeChangesAt is ComputeChanges with an explicit change timestamp (unix ms).
//
// previous == nil emits every leaf of current as create, current == nil emits
// every leaf of previous as delete. Otherwise leaves that differ produce update,
// leaves missing from current produce delete.
func ComputeChangesAt(previous, current models.Document, ts int64) []models.StateChange {
	switch {
	case previous == nil && current == nil:
		return []models.StateChange{}
	case previous == nil:
		return emitAll(Flatten(current), models.ChangeCreate, ts)
	case current == nil:
		return emitAll(Flatten(previous), models.ChangeDelete, ts)
	}

	prevLeaves := Flatten(previous)
	currLeaves := Flatten(current)

	keys := make([]string, 0, len(prevLeaves)+len(currLeaves))
	for k := range prevLeaves {
		keys = append(keys, k)
	}
	for k := range currLeaves {
		if _, ok := prevLeaves[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	changes := make([]models.StateChange, 0)
	for _, field := range keys {
		if IsDenied(field) {
			continue
		}

		oldValue, hadOld := prevLeaves[field]
		newValue, hasNew := currLeaves[field]

		switch {
		case !hasNew:
			changes = append(changes, models.StateChange{
				Field:      field,
				OldValue:   oldValue,
				ChangeType: models.ChangeDelete,
				Timestamp:  ts,
			})
		case !hadOld || !Equal(oldValue, newValue):
			changes = append(changes, models.StateChange{
				Field:      field,
				OldValue:   oldValue,
				NewValue:   newValue,
				ChangeType: models.ChangeUpdate,
				Timestamp:  ts,
			})
		}
	}
	return changes
}

func emitAll(leaves map[string]any, changeType models.ChangeType, ts int64) []models.StateChange {
	keys := make([]string, 0, len(leaves))
	for k := range leaves {
		if !IsDenied(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	changes := make([]models.StateChange, 0, len(keys))
	for _, field := range keys {
		change := models.StateChange{
			Field:      field,
			ChangeType: changeType,
			Timestamp:  ts,
		}
		if changeType == models.ChangeDelete {
			change.OldValue = leaves[field]
		} else {
			change.NewValue = leaves[field]
		}
		changes = append(changes, change)
	}
	return changes
}

// Flatten разворачивает документ в листья с путями через точку.
// Пустой вложенный документ остается листом, чтобы его можно было восстановить.
func Flatten(doc models.Document) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", doc)
	return out
}

func flattenInto(out map[string]any, prefix string, doc models.Document) {
	for key, value := range doc {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}

		nested, ok := asDocument(value)
		if ok && len(nested) > 0 {
			flattenInto(out, path, nested)
			continue
		}
		if ok {
			out[path] = models.Document{}
			continue
		}
		out[path] = value
	}
}

// asDocument распознает вложенные объекты обоих представлений
func asDocument(v any) (models.Document, bool) {
	switch d := v.(type) {
	case models.Document:
		return d, true
	case map[string]any:
		return models.Document(d), true
	default:
		return nil, false
	}
}
