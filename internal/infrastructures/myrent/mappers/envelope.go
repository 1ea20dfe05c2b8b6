package mappers

type EnvelopeKind uint8

const (
	EnvelopeUnknown EnvelopeKind = iota
	// EnvelopeClassic carries the result in data.quotation[], usually a list of one.
	EnvelopeClassic
	// EnvelopeFlat has Vehicles directly under data.
	EnvelopeFlat
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeClassic:
		return "classic"
	case EnvelopeFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// Envelope is the single internal shape every quotation payload is reduced to.
type Envelope struct {
	Kind      EnvelopeKind
	header    []map[string]any
	Vehicles  []map[string]any
	Optionals []map[string]any
}

// Header looks a key up in the quotation node first and the data node second.
func (e Envelope) Header(key string) any {
	for _, node := range e.header {
		if v, ok := node[key]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

func DetectEnvelope(payload any) Envelope {
	root := asMap(payload)
	if root == nil {
		return Envelope{Kind: EnvelopeUnknown}
	}

	data := asMap(root["data"])
	if data == nil {
		data = asMap(root["Data"])
	}
	if data == nil {
		return Envelope{Kind: EnvelopeUnknown}
	}

	quotation := asList(firstTruthy(data, "quotation", "Quotation"))
	if len(quotation) > 0 {
		env := Envelope{Kind: EnvelopeClassic}
		for _, raw := range quotation {
			item := asMap(raw)
			if item == nil {
				continue
			}
			if len(env.header) == 0 {
				env.header = append(env.header, item)
			}
			env.Vehicles = append(env.Vehicles, mapsOf(item["Vehicles"])...)
			env.Optionals = append(env.Optionals, mapsOf(item["optionals"])...)
		}
		env.header = append(env.header, data)
		if len(env.Optionals) == 0 {
			env.Optionals = mapsOf(data["optionals"])
		}
		return env
	}

	return Envelope{
		Kind:      EnvelopeFlat,
		header:    []map[string]any{data},
		Vehicles:  mapsOf(data["Vehicles"]),
		Optionals: mapsOf(data["optionals"]),
	}
}

func mapsOf(v any) []map[string]any {
	list := asList(v)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m := asMap(item); m != nil {
			out = append(out, m)
		}
	}
	return out
}
