package schema

import (
	"github.com/jmgilman/go/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// GlobalDataPath is where a world file keeps its global data block.
const GlobalDataPath = "World/0/GlobalData.mps"

// GlobalData holds the name tables shared by all schemas of a world
type GlobalData struct {
	EntityTypeNames           []string `msgpack:"entity_type_names"`
	BasicBrickAssetNames      []string `msgpack:"basic_brick_asset_names"`
	ProceduralBrickAssetNames []string `msgpack:"procedural_brick_asset_names"`
	MaterialAssetNames        []string `msgpack:"material_asset_names"`
	ComponentTypeNames        []string `msgpack:"component_type_names"`
	ComponentDataStructNames  []string `msgpack:"component_data_struct_names"`
	ComponentWirePortNames    []string `msgpack:"component_wire_port_names"`
}

// DecodeGlobalData parses a global data block
func DecodeGlobalData(b []byte) (*GlobalData, error) {
	if len(b) == 0 {
		return nil, errors.New(CodeGlobalDataFailed, "global data is empty")
	}

	var gd GlobalData
	if err := msgpack.Unmarshal(b, &gd); err != nil {
		return nil, errors.Wrap(err, CodeGlobalDataFailed, "failed to decode global data")
	}
	return &gd, nil
}

// StructName returns the interned component struct name at index.
func (gd *GlobalData) StructName(index uint64) (string, bool) {
	if gd == nil || index >= uint64(len(gd.ComponentDataStructNames)) {
		return "", false
	}
	return gd.ComponentDataStructNames[index], true
}
