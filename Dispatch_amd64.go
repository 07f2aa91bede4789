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

//go:build amd64

package rans

import "golang.org/x/sys/cpu"

// The per-symbol state update of each interleaved stream is independent of
// the others, so wider vector units can retire more streams per iteration.
// Pick a default stream count matching the widest available unit.
var defaultStreams = 4

func init() {
	if cpu.X86.HasAVX512F {
		defaultStreams = 16
	} else if cpu.X86.HasAVX2 {
		defaultStreams = 8
	}
}
