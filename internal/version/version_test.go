// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()

	if !strings.HasPrefix(info, "phi-validate ") {
		t.Errorf("Info() = %q, want phi-validate prefix", info)
	}
	for _, field := range []string{Version, GitCommit, BuildDate, GoVersion, Platform} {
		if !strings.Contains(info, field) {
			t.Errorf("Info() = %q, missing %q", info, field)
		}
	}
}
