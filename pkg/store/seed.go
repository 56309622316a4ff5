package store

import (
	"context"
	"fmt"

	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/models"
	"github.com/shakil-ahmed-billal/Legal-Document-Al/internal/types"
)

// SampleDocuments are loaded into an empty store on first start.
var SampleDocuments = []models.DocumentInput{
	{
		Title:    "Software License Agreement",
		Category: "Software License",
		Content: `This Software License Agreement ("Agreement") is entered into as of January 1, 2024.

1. GRANT OF LICENSE: Licensor grants Licensee a non-exclusive, non-transferable license to use the software.

2. RESTRICTIONS: Licensee shall not: (a) reverse engineer, decompile, or disassemble the software;
(b) rent, lease, or lend the software; (c) transfer the software to any third party.

3. TERMINATION: This Agreement may be terminated by either party with 30 days written notice.
Upon termination, Licensee must destroy all copies of the software.

4. WARRANTY DISCLAIMER: The software is provided "AS IS" without warranty of any kind,
either express or implied, including but not limited to warranties of merchantability.

5. LIMITATION OF LIABILITY: In no event shall Licensor be liable for any damages exceeding
the amount paid by Licensee for the software.

6. GOVERNING LAW: This Agreement shall be governed by the laws of California, USA.`,
	},
	{
		Title:    "Employment Contract",
		Category: "Employment",
		Content: `EMPLOYMENT AGREEMENT dated March 15, 2024, between XYZ Corporation ("Employer") and John Doe ("Employee").

1. POSITION: Employee shall serve as Senior Software Engineer, reporting to the CTO.

2. COMPENSATION: Employee shall receive an annual salary of $120,000, payable bi-weekly.

3. BENEFITS: Employee is entitled to: (a) health insurance coverage; (b) 15 days paid vacation;
(c) 401(k) retirement plan with 5% employer matching.

4. CONFIDENTIALITY: Employee agrees to maintain confidentiality of all proprietary information
and trade secrets during and after employment.

5. NON-COMPETE: For 12 months following termination, Employee shall not engage in competing
business activities within 50 miles of Employer's location.

6. TERMINATION: Either party may terminate this agreement with 2 weeks notice. Employer may
terminate immediately for cause, including misconduct or breach of agreement.

7. INTELLECTUAL PROPERTY: All work product created during employment shall be the exclusive
property of Employer.`,
	},
	{
		Title:    "Terms of Service Agreement",
		Category: "Terms of Service",
		Content: `TERMS OF SERVICE - Last Updated: June 1, 2024

1. ACCEPTANCE OF TERMS: By accessing this website, you agree to be bound by these Terms of Service.

2. USER ACCOUNTS: Users must: (a) provide accurate information; (b) maintain account security;
(c) be at least 18 years old; (d) not share login credentials.

3. ACCEPTABLE USE: Users shall not: (a) violate any laws; (b) infringe on intellectual property;
(c) transmit malware or harmful code; (d) harass other users; (e) attempt unauthorized access.

4. CONTENT OWNERSHIP: Users retain ownership of their content but grant us a worldwide,
royalty-free license to use, display, and distribute such content.

5. DATA PRIVACY: We collect and process personal data according to our Privacy Policy.
Users have rights to access, modify, and delete their data.

6. REFUND POLICY: Subscription fees are non-refundable except as required by law.
Users may cancel subscriptions at any time.

7. DISPUTE RESOLUTION: Disputes shall be resolved through binding arbitration in accordance
with the rules of the American Arbitration Association.

8. MODIFICATIONS: We reserve the right to modify these terms with 30 days notice to users.`,
	},
}

// Seed inserts SampleDocuments when s holds no documents and reports how many
// were created.
func Seed(ctx context.Context, s types.DocumentStore) (int, error) {
	existing, err := s.Documents(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, input := range SampleDocuments {
		if _, err := s.CreateDocument(ctx, input); err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", input.Title, err)
		}
	}
	return len(SampleDocuments), nil
}
