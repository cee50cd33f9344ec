package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// fieldDiff returns the dotted paths of every field whose value differs
// between the two payloads. Nested objects are compared key by key
// ("additionalInfo.plotNumber"); everything else by deep equality. The result
// is sorted so conflict rows are stable across runs.
func fieldDiff(localPayload, serverPayload json.RawMessage) ([]string, error) {
	var localDoc, serverDoc map[string]any
	if err := json.Unmarshal(localPayload, &localDoc); err != nil {
		return nil, fmt.Errorf("decode local payload: %w", err)
	}
	if err := json.Unmarshal(serverPayload, &serverDoc); err != nil {
		return nil, fmt.Errorf("decode server payload: %w", err)
	}

	fields := diffMaps("", localDoc, serverDoc)
	sort.Strings(fields)
	return fields, nil
}

func diffMaps(prefix string, local, server map[string]any) []string {
	var fields []string

	for key, localValue := range local {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		serverValue, ok := server[key]
		if !ok {
			fields = append(fields, path)
			continue
		}

		localMap, localIsMap := localValue.(map[string]any)
		serverMap, serverIsMap := serverValue.(map[string]any)
		if localIsMap && serverIsMap {
			fields = append(fields, diffMaps(path, localMap, serverMap)...)
			continue
		}

		if !jsonEqual(localValue, serverValue) {
			fields = append(fields, path)
		}
	}

	for key := range server {
		if _, ok := local[key]; !ok {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			fields = append(fields, path)
		}
	}

	return fields
}

// deepMerge merges the local payload over the server payload: local wins on
// scalars and arrays, nested objects are merged key by key. Keys present only
// on either side survive.
//
//	{"a":1,"b":{"c":2}} over {"b":{"d":3},"e":4} = {"a":1,"b":{"c":2,"d":3},"e":4}
func deepMerge(localPayload, serverPayload json.RawMessage) (json.RawMessage, error) {
	var localDoc, serverDoc map[string]any
	if err := json.Unmarshal(localPayload, &localDoc); err != nil {
		return nil, fmt.Errorf("decode local payload: %w", err)
	}
	if err := json.Unmarshal(serverPayload, &serverDoc); err != nil {
		return nil, fmt.Errorf("decode server payload: %w", err)
	}

	merged, err := json.Marshal(mergeMaps(serverDoc, localDoc))
	if err != nil {
		return nil, fmt.Errorf("encode merged payload: %w", err)
	}

	return merged, nil
}

// mergeMaps merges src over dst in place and returns dst.
func mergeMaps(dst, src map[string]any) map[string]any {
	for key, srcValue := range src {
		dstMap, dstIsMap := dst[key].(map[string]any)
		srcMap, srcIsMap := srcValue.(map[string]any)
		if dstIsMap && srcIsMap {
			dst[key] = mergeMaps(dstMap, srcMap)
			continue
		}
		dst[key] = srcValue
	}

	return dst
}

// jsonEqual compares two decoded JSON values. Numbers all decode to float64,
// so reflect.DeepEqual gives JSON-level equality.
func jsonEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
