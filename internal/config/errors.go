// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidNumPorts       = errors.New("config: num_ports must be >= 1")
	ErrInvalidWorkerPoolSize = errors.New("config: push worker pool size must be >= 1")
)
