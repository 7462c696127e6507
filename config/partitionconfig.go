package config

import (
	"encoding/json"

	"github.com/qecsim/fusionmatch/partition"
)

// ParsePartitionConfig decodes a `--partition-config` file's JSON body
// into a partition.PlanSpec (spec.md §6's `PartitionConfig` shape). Unlike
// `--code-config`, spec.md gives this flag no dedicated DSL, so this is a
// direct JSON decode of the already-defined wire struct.
func ParsePartitionConfig(data []byte) (partition.PlanSpec, error) {
	var spec partition.PlanSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return partition.PlanSpec{}, err
	}
	return spec, nil
}
