package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/garage-sale/internal/domain"
)

const maxBodyBytes = 64 << 10

// readFields flattens a form or JSON object body into string fields.
func readFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return readJSONFields(r.Body)
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}

	return fields, nil
}

func readJSONFields(body io.Reader) (map[string]string, error) {
	var raw map[string]any

	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case bool:
			fields[key] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("%w: field %s must be a scalar", errBadRequest, key)
		}
	}

	return fields, nil
}

func parseItemParams(fields map[string]string) (domain.ItemParams, error) {
	params := domain.ItemParams{
		Name:        strings.TrimSpace(fields["name"]),
		Description: fields["description"],
	}

	raw := strings.TrimSpace(fields["price_in_cents"])
	if raw == "" {
		return domain.ItemParams{}, &domain.ValidationError{Field: "price_in_cents", Message: "is required"}
	}

	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return domain.ItemParams{}, &domain.ValidationError{Field: "price_in_cents", Message: "must be a non-negative integer"}
	}
	params.PriceInCents = price

	return params, params.Validate()
}

func parseUUIDField(fields map[string]string, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(fields[name])
	if raw == "" {
		return uuid.Nil, &domain.ValidationError{Field: name, Message: "is required"}
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domain.ValidationError{Field: name, Message: "is not a valid id"}
	}

	return id, nil
}

func parseContact(fields map[string]string) (domain.Contact, error) {
	contact := domain.Contact{
		FirstName: strings.TrimSpace(fields["first_name"]),
		LastName:  strings.TrimSpace(fields["last_name"]),
		Email:     strings.TrimSpace(fields["email"]),
	}

	return contact, contact.Validate()
}
