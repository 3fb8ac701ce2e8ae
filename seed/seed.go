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


// Package seed loads the sample campus knowledge base.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/storage"
)

// Entries returns the sample knowledge base in collection order.
func Entries() []core.EntryDraft {
	return []core.EntryDraft{
		{
			Title:    "Office Hours",
			Content:  "Our office hours are Monday through Friday, 9:00 AM to 5:00 PM. We are closed on weekends and public holidays. For emergency support, please call our 24/7 helpline.",
			Category: core.CategoryNotice,
		},
		{
			Title:    "How to Apply for Leave",
			Content:  "To apply for leave:\n1. Fill out the leave application form on the employee portal\n2. Submit to your direct supervisor at least 3 days in advance\n3. Wait for approval confirmation via email\n4. For medical leave, attach doctor's certificate\n5. For extended leave (>7 days), HR approval is required.",
			Category: core.CategoryFAQ,
		},
		{
			Title:    "Password Reset",
			Content:  "To reset your password:\n1. Go to the login page\n2. Click \"Forgot Password\"\n3. Enter your registered email address\n4. Check your email for reset instructions\n5. Follow the link and create a new password\n6. Contact IT support if you don't receive the email within 10 minutes.",
			Category: core.CategoryFAQ,
		},
		{
			Title:    "IT Support Contact",
			Content:  "For IT support:\n• Email: itsupport@company.com\n• Phone: (555) 123-4567 (ext. 101)\n• Help Desk: Room 205, 2nd Floor\n• Emergency Support: Available 24/7\n• Response Time: Within 4 hours for critical issues",
			Category: core.CategoryFAQ,
		},
		{
			Title:    "Training Module Requirements",
			Content:  "All employees must complete mandatory training modules within 30 days of enrollment. This includes:\n• Safety Training\n• Data Security Awareness\n• Company Policies Overview\n• Role-specific training modules\n\nFailure to complete training may result in account restrictions.",
			Category: core.CategoryCircular,
		},
		{
			Title:    "Expense Reimbursement",
			Content:  "To claim expense reimbursement:\n1. Submit receipts within 30 days of expense\n2. Use the expense portal for claims\n3. Attach all original receipts\n4. Include business justification\n5. Manager approval required for amounts >$500\n6. Processing time: 5-7 business days",
			Category: core.CategoryFAQ,
		},
		{
			Title:    "Remote Work Policy",
			Content:  "Remote work guidelines:\n• Maximum 3 days per week remote work\n• Prior approval from manager required\n• Must be available during core hours (10 AM - 3 PM)\n• Regular check-ins with team mandatory\n• Secure VPN connection required\n• Home office setup guidelines available on portal",
			Category: core.CategoryCircular,
		},
		{
			Title:    "HR Contact Information",
			Content:  "Human Resources contacts:\n• General HR: hr@company.com\n• Payroll: payroll@company.com\n• Benefits: benefits@company.com\n• Phone: (555) 123-4567 (ext. 201)\n• Office: Room 301, 3rd Floor\n• Hours: Monday-Friday, 8:30 AM - 5:30 PM",
			Category: core.CategoryFAQ,
		},
		{
			Title:    "Holiday Schedule 2024",
			Content:  "Official holidays for 2024:\n• New Year's Day - January 1\n• Memorial Day - May 27\n• Independence Day - July 4\n• Labor Day - September 2\n• Thanksgiving - November 28-29\n• Christmas - December 25\n\nFloating holidays: 2 additional days per employee per year.",
			Category: core.CategoryNotice,
		},
		{
			Title:    "Building Access and Security",
			Content:  "Building access information:\n• Main entrance: 7:00 AM - 7:00 PM (weekdays)\n• After hours: Use keycard at side entrance\n• Visitor policy: All visitors must sign in at reception\n• Lost keycard: Report immediately to security\n• Security office: Ground floor, next to reception\n• Emergency: Dial 911 or press red emergency buttons",
			Category: core.CategoryFAQ,
		},
	}
}

type options struct {
	force  bool
	logger *slog.Logger
}

// Option configures Apply.
type Option func(*options)

// Force inserts the sample entries even when the store already has entries.
func Force() Option {
	return func(o *options) {
		o.force = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Apply adds the sample entries to repo if it is empty and returns how many
// entries were inserted.
func Apply(ctx context.Context, repo storage.EntryRepository, opts ...Option) (int, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.force {
		count, err := repo.CountEntries(ctx)
		if err != nil {
			return 0, fmt.Errorf("counting entries: %w", err)
		}
		if count > 0 {
			o.logger.Debug("knowledge base already populated, skipping seed", "entries", count)
			return 0, nil
		}
	}

	added, err := repo.AddEntries(ctx, Entries()...)
	if err != nil {
		return 0, fmt.Errorf("seeding entries: %w", err)
	}

	o.logger.Info("seeded knowledge base", "entries", len(added))
	return len(added), nil
}
