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


// Package transfer moves knowledge entries in and out of the store as YAML.
//
// An export is a single YAML document:
//
//	entries:
//	  - id: 7f1c...
//	    title: Office Hours
//	    content: |
//	      Our office hours are ...
//	    category: notice
//	    created_at: 2024-05-01T09:00:00Z
//	    updated_at: 2024-05-01T09:00:00Z
//
// Imports read the same shape. Ids and timestamps in an import are ignored;
// the store assigns fresh ones and entries keep their document order.
//
// Both directions work in batches and report progress to a writer:
//
//	exporter := transfer.NewExporter(repo, transfer.DefaultConfig(), os.Stderr)
//	n, err := exporter.Run(ctx, file)
package transfer
