// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ecloudpb

import "encoding/json"

// Marshal serializes a message the same way the package's gRPC codec does,
// for components (the pending-replies list, the edge-waypoint buffer) that
// stage opaque serialized payloads rather than live values, matching the
// reference implementation's SerializeToString/ParseFromString discipline.
func Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

// Unmarshal is the Marshal counterpart.
func Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
