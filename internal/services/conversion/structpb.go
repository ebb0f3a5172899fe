package conversion

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/booster-sim/internal/errors"
)

// ToStruct converts any JSON-serialisable view into a protobuf Struct
func ToStruct(view any) (*structpb.Struct, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal view")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to convert view to struct")
	}
	return out, nil
}

// FromStruct decodes a protobuf Struct into a view
func FromStruct(in *structpb.Struct, view any) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to marshal struct")
	}
	if err := json.Unmarshal(data, view); err != nil {
		return errors.Wrap(err, "failed to decode struct into view")
	}
	return nil
}
