/*
Copyright 2024 The SUNET Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package util

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestSanitise(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"DotsAndUnderscores":   {in: "My_Project.Example.COM", want: "my-project-example-com"},
		"CollapsesHyphenRuns":  {in: "a--b___c", want: "a-b-c"},
		"TrimsLeadingTrailing": {in: "_leading.trailing_", want: "leading-trailing"},
		"DropsInvalidChars":    {in: "pröj#ect!", want: "prject"},
		"AlreadyClean":         {in: "alpha-1", want: "alpha-1"},
		"Empty":                {in: "", want: ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			g.Expect(Sanitise(tc.in)).To(Equal(tc.want))
		})
	}
}

func TestMakeGroupName(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(MakeGroupName("alpha.example.se")).To(Equal("alpha-example-se-users"))
}

func TestIsValidUUID(t *testing.T) {
	cases := map[string]struct {
		in   string
		want bool
	}{
		"Canonical":  {in: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", want: true},
		"Hyphenless": {in: "6ba7b8109dad11d180b400c04fd430c8", want: true},
		"UpperCase":  {in: "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", want: true},
		"Empty":      {in: "", want: false},
		"None":       {in: "None", want: false},
		"GroupName":  {in: "alpha-example-se-users", want: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			g.Expect(IsValidUUID(tc.in)).To(Equal(tc.want))
		})
	}
}

func TestTruncate(t *testing.T) {
	g := NewGomegaWithT(t)

	g.Expect(Truncate("short", 200)).To(Equal("short"))
	g.Expect(Truncate("abcdef", 3)).To(Equal("abc"))
	g.Expect(Truncate("", 3)).To(Equal(""))
}

func TestNowRFC3339(t *testing.T) {
	g := NewGomegaWithT(t)

	at := time.Date(2024, 7, 1, 12, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	g.Expect(NowRFC3339(at)).To(Equal("2024-07-01T10:30:00Z"))
}
