package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"childrenlk/internal/models"
)

// DecodeRequest parses body as the submission schema of kind, validates it
// and returns an unsaved request carrying the normalized payload.
func DecodeRequest(kind models.RequestKind, body []byte) (models.Request, error) {
	switch kind {
	case models.KindResource:
		var in ResourceInput
		if err := decodeAndValidate(body, &in); err != nil {
			return nil, err
		}
		return &models.ResourceRequest{ResourcePayload: in.Payload()}, nil
	case models.KindMedia:
		var in MediaInput
		if err := decodeAndValidate(body, &in); err != nil {
			return nil, err
		}
		return &models.MediaRequest{MediaPayload: in.Payload()}, nil
	case models.KindEvent:
		var in EventInput
		if err := decodeAndValidate(body, &in); err != nil {
			return nil, err
		}
		return &models.EventRequest{EventPayload: in.Payload()}, nil
	case models.KindSuperHero:
		var in SuperHeroInput
		if err := decodeAndValidate(body, &in); err != nil {
			return nil, err
		}
		return &models.SuperHeroRequest{SuperHeroPayload: in.Payload()}, nil
	}
	return nil, models.NewValidationError("Unknown request type")
}

func decodeAndValidate(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return decodeError(body, dst, err)
	}
	return Struct(dst)
}

var timeType = reflect.TypeOf(time.Time{})

// decodeError names the offending field when the body is well-formed JSON
// but a value has the wrong type or an unparseable timestamp.
func decodeError(body []byte, dst any, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.NewValidationError(fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type)))
	}

	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		if field := badTimestampField(body, dst); field != "" {
			return models.NewValidationError(field + " must be an RFC 3339 date-time, e.g. 2026-05-01T09:00:00Z")
		}
	}
	return models.NewValidationError("Invalid request body")
}

// badTimestampField returns the JSON name of the first top-level time field
// of dst whose value in body does not parse.
func badTimestampField(body []byte, dst any) string {
	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &raw) != nil {
		return ""
	}
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft != timeType {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		v, ok := raw[name]
		if !ok {
			continue
		}
		var ts *time.Time
		if json.Unmarshal(v, &ts) != nil {
			return name
		}
	}
	return ""
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list"
	default:
		return "object"
	}
}
