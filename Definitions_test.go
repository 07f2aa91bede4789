/*
Copyright 2023-2026 the rans-go authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rans

import (
	"errors"
	"strings"
	"testing"
)

func TestError(t *testing.T) {
	err := Errorf(ERR_INVALID_RANGE, "min %d > max %d", 5, 4)

	if err.ErrorCode() != ERR_INVALID_RANGE {
		t.Errorf("ErrorCode() = %d, expected %d", err.ErrorCode(), ERR_INVALID_RANGE)
	}

	if !strings.Contains(err.Error(), "min 5 > max 4") {
		t.Errorf("Unexpected message: %v", err.Error())
	}

	if ErrorCode(err) != ERR_INVALID_RANGE {
		t.Errorf("ErrorCode helper failed on a library error")
	}

	if ErrorCode(errors.New("foreign")) != ERR_UNKNOWN {
		t.Errorf("ErrorCode helper must return ERR_UNKNOWN for foreign errors")
	}
}

func TestDefaultCoderConfig(t *testing.T) {
	cfg := DefaultCoderConfig()

	if cfg.NStreams < 1 || cfg.NStreams > MaxStreams {
		t.Errorf("Default stream count %d outside [1..%d]", cfg.NStreams, MaxStreams)
	}

	if cfg.NStreams&(cfg.NStreams-1) != 0 {
		t.Errorf("Default stream count %d is not a power of 2", cfg.NStreams)
	}
}
