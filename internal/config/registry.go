package config

import (
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/polkiloo/pharmanet/internal/domain/model"
)

// Registry is an ordered list of pharmacies with their base URLs. It is
// written either as "id=url,id=url" (order kept) or as a JSON object (sorted by id).
type Registry []model.Pharmacy

// Decode implements envconfig.Decoder.
func (r *Registry) Decode(value string) error {
	parsed, err := ParseRegistry(value)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRegistry parses a registry definition.
func ParseRegistry(raw string) (Registry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var entries Registry
	if strings.HasPrefix(raw, "{") {
		var obj map[string]string
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			return nil, errors.Wrap(err, "parse pharmacy registry json")
		}
		for id, base := range obj {
			entries = append(entries, model.Pharmacy{ID: id, BaseURL: base})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	} else {
		for _, pair := range strings.Split(raw, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			id, base, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, errors.Newf("invalid registry entry %q, want id=url", pair)
			}
			entries = append(entries, model.Pharmacy{ID: strings.TrimSpace(id), BaseURL: strings.TrimSpace(base)})
		}
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, errors.New("registry entry with empty pharmacy id")
		}
		if _, dup := seen[e.ID]; dup {
			return nil, errors.Newf("duplicate pharmacy id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		u, err := url.Parse(e.BaseURL)
		if err != nil || !u.IsAbs() {
			return nil, errors.Newf("pharmacy %q: base url %q must be absolute", e.ID, e.BaseURL)
		}
	}
	return entries, nil
}

// String renders the registry in id=url form.
func (r Registry) String() string {
	parts := make([]string, 0, len(r))
	for _, e := range r {
		parts = append(parts, e.ID+"="+e.BaseURL)
	}
	return strings.Join(parts, ",")
}
