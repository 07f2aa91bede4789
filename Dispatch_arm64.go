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

//go:build arm64

package rans

import "golang.org/x/sys/cpu"

// NEON is 128 bits wide; SVE targets go wider but lane count is not fixed,
// so 8 interleaved streams is a safe default when ASIMD is present.
var defaultStreams = 4

func init() {
	if cpu.ARM64.HasASIMD {
		defaultStreams = 8
	}
}
