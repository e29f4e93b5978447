package editsession

import (
	"fmt"
	"strconv"
	"time"

	"notefiber-editor/internal/entity"
)

// Field names an editable field of a note. Names follow the editor form.
type Field string

const (
	FieldTitle            Field = "title"
	FieldDescription      Field = "description"
	FieldDate             Field = "date"
	FieldButtonContent    Field = "buttonContent"
	FieldButtonUrl        Field = "buttonUrl"
	FieldShowCallToAction Field = "showCallToAction"
)

var fields = []Field{
	FieldTitle,
	FieldDescription,
	FieldDate,
	FieldButtonContent,
	FieldButtonUrl,
	FieldShowCallToAction,
}

// Fields lists every editable field in form order.
func Fields() []Field {
	return append([]Field(nil), fields...)
}

func ParseField(name string) (Field, bool) {
	for _, f := range fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// assign sets field on n if value has the field's type.
func assign(n *entity.Note, field Field, value any) bool {
	switch field {
	case FieldTitle, FieldDescription, FieldButtonContent, FieldButtonUrl:
		s, ok := value.(string)
		if !ok {
			return false
		}
		switch field {
		case FieldTitle:
			n.Title = s
		case FieldDescription:
			n.Description = s
		case FieldButtonContent:
			n.ButtonContent = s
		default:
			n.ButtonUrl = s
		}
	case FieldDate:
		d, ok := value.(time.Time)
		if !ok {
			return false
		}
		n.Date = d
	case FieldShowCallToAction:
		b, ok := value.(bool)
		if !ok {
			return false
		}
		n.ShowCallToAction = b
	default:
		return false
	}
	return true
}

// Value reads field from n.
func Value(n entity.Note, field Field) (any, bool) {
	switch field {
	case FieldTitle:
		return n.Title, true
	case FieldDescription:
		return n.Description, true
	case FieldDate:
		return n.Date, true
	case FieldButtonContent:
		return n.ButtonContent, true
	case FieldButtonUrl:
		return n.ButtonUrl, true
	case FieldShowCallToAction:
		return n.ShowCallToAction, true
	}
	return nil, false
}

// ParseValue converts operator text into the field's type. Dates accept
// RFC 3339 or YYYY-MM-DD.
func ParseValue(field Field, raw string) (any, error) {
	switch field {
	case FieldTitle, FieldDescription, FieldButtonContent, FieldButtonUrl:
		return raw, nil
	case FieldDate:
		if raw == "" {
			return time.Time{}, nil
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", raw)
		}
		return t, nil
	case FieldShowCallToAction:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q", raw)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown field %q", field)
}
