// Copyright 2025 Poiesic Systems
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


// Package search maps a free-text question to the best knowledge-base entry.
//
// The Matcher scores every entry against the question with three signals:
//   - a substring bonus when the whole question appears in the title or content
//   - a synonym bonus for each synonym-table row the question triggers and the
//     entry mentions by its canonical keyword
//   - a term bonus for every question word longer than two characters found in
//     the title (3) or the content (1)
//
// The highest score wins, earlier entries win ties, and a best score of zero is
// reported as "no match" rather than an error. Matching is pure: entries are
// read, never modified, and no I/O happens.
package search
