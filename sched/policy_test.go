// Copyright 2026 The mmbench Authors. SPDX-License-Identifier: Apache-2.0

package sched

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"static", Static, false},
		{"dynamic", Dynamic, false},
		{"guided", Guided, false},
		{"", 0, true},
		{"Static", 0, true},
		{"roundrobin", 0, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPolicyString(t *testing.T) {
	for _, tt := range []struct {
		pol  Policy
		want string
	}{
		{Static, "static"},
		{Dynamic, "dynamic"},
		{Guided, "guided"},
	} {
		if got := tt.pol.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.pol), got, tt.want)
		}
	}

	if got := Policy(42).String(); got != "sched.Policy(42)" {
		t.Errorf("unknown policy String() = %q", got)
	}
}
