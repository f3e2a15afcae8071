// Copyright (c) 2025, SecEnum Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package collector

import (
	"fmt"
	"strings"
)

// Signature identifies a platform for collector variant selection:
// the operating system plus the distribution family.
type Signature struct {
	OS     string
	Family string
}

// String returns the canonical "os/family" form of the signature.
func (s Signature) String() string {
	return fmt.Sprintf("%s/%s", s.OS, s.Family)
}

// normalize lowercases both components so lookups are case-insensitive.
func (s Signature) normalize() Signature {
	return Signature{
		OS:     strings.ToLower(s.OS),
		Family: strings.ToLower(s.Family),
	}
}

// Constructors bundles the variant constructors registered for one platform
// signature. Construction may still fail (e.g., the package database is
// absent) even when the signature matched.
type Constructors struct {
	PackageManager    func(opts Options) (PackageManager, error)
	ServiceEnumerator func(opts Options) (ServiceEnumerator, error)
}

// Registry maps platform signatures to collector constructors. Selection
// is an explicit registration rather than an inheritance chain: platforms
// without a registered variant are unsupported, never silent fallbacks.
type Registry struct {
	variants map[Signature]Constructors
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{variants: make(map[Signature]Constructors)}
}

// Register binds constructors to a platform signature, replacing any
// previous registration for that signature.
func (r *Registry) Register(sig Signature, c Constructors) {
	r.variants[sig.normalize()] = c
}

// Lookup returns the constructors registered for the signature.
func (r *Registry) Lookup(sig Signature) (Constructors, bool) {
	c, ok := r.variants[sig.normalize()]
	return c, ok
}

// Signatures returns the registered platform signatures.
func (r *Registry) Signatures() []Signature {
	sigs := make([]Signature, 0, len(r.variants))
	for sig := range r.variants {
		sigs = append(sigs, sig)
	}
	return sigs
}
