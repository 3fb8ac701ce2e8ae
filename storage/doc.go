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


// Package storage provides the storage abstraction layer for sathi.
//
// This package defines repository interfaces that decouple the knowledge-base
// and transcript stores from the assistant and the command line. The only
// backend today is BadgerDB (package storage/badger), which also offers an
// in-memory mode for tests.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: transaction support and lifecycle shared by all repositories
//   - EntryRepository: CRUD over knowledge entries (circulars, notices, FAQs)
//   - ChatRepository: append-only chat transcript
//
// # Snapshots
//
// EntryRepository.ListEntries reads every entry inside a single read
// transaction and returns freshly decoded values in collection order. The
// result is a consistent snapshot owned by the caller; later writes to the
// store never show through it. The matcher in package search only ever
// receives such snapshots.
//
// # Usage
//
//	entries, chat, backend, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer func() { chat.Close(); entries.Close(); backend.Close() }()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
