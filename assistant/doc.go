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


// Package assistant answers campus questions from the knowledge base and
// keeps a per-user chat transcript.
//
// # Asking
//
// Ask records the question, matches it against a snapshot of the entry
// store and records the reply:
//
//	a, err := assistant.NewAssistant(entryRepo, chatRepo)
//	if err != nil {
//	    return err
//	}
//	defer a.Release()
//
//	reply, err := a.Ask(ctx, user, "What are the office hours?")
//	fmt.Println(reply.Text)
//
// When nothing matches, the reply carries the localized fallback message
// and Found is false.
//
// # Batches
//
// AnswerAll answers many questions concurrently on a worker pool against
// a single snapshot. Nothing is written to the transcript.
package assistant
