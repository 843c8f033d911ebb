package knowledge

// DefaultBase returns the built-in advising knowledge base, used when no
// knowledge base file is configured. The articles cover the questions the
// advising office answers most often.
func DefaultBase() *Base {
	base, err := NewBase(defaultArticles())
	if err != nil {
		// The built-in articles are validated by tests; a failure here is
		// a programming error.
		panic(err)
	}
	return base
}

func defaultArticles() []Article {
	return []Article{
		{
			ID:       "drop-class",
			Subject:  "Dropping a class for {term}",
			Response: "Hello {student_name},\n\nTo drop a class, sign in to the student portal, open Registration, and select \"Drop/Withdraw\" next to the course. Drops completed before {withdrawal_deadline} do not appear on your transcript. After that date the course is recorded as a withdrawal (W).\n\nIf the course is your last enrolled class, contact the advising office first so we can review the impact on your status.\n\nBest,\nAcademic Advising Team",
			Utterances: []string{
				"How do I drop a class?",
				"I want to drop a course this semester",
				"Can I withdraw from a class after the deadline?",
				"What is the process for dropping a course?",
			},
			Categories: []string{"registration", "withdrawal"},
			Metadata:   map[string]string{},
			FollowUpQuestions: []string{
				"Is this the only course you are enrolled in this term?",
				"Are you receiving financial aid this term?",
			},
		},
		{
			ID:       "registration-deadline",
			Subject:  "Registration dates for {term}",
			Response: "Hello {student_name},\n\nRegistration for {term} closes on {registration_deadline}. You can add or swap courses in the student portal until then. After the deadline, enrollment changes require an approved late-add petition.\n\nBest,\nAcademic Advising Team",
			Utterances: []string{
				"When does registration close?",
				"What is the registration deadline?",
				"When is the last day to register for classes?",
				"Can I still enroll in courses?",
			},
			Categories: []string{"registration", "deadline"},
			Metadata:   map[string]string{},
			FollowUpQuestions: []string{
				"Which courses are you hoping to add?",
			},
		},
		{
			ID:       "financial-aid",
			Subject:  "Financial aid questions",
			Response: "Hello {student_name},\n\nFinancial aid awards, disbursement dates, and outstanding requirements are handled by the Financial Aid Office. You can reach them at {financial_aid_phone} or {financial_aid_email}. Please have your student ID ready when you call.\n\nNote that dropping below full-time enrollment can change your award, so check with them before reducing your course load.\n\nBest,\nAcademic Advising Team",
			Utterances: []string{
				"I have a question about my financial aid",
				"When will my financial aid disburse?",
				"Who do I contact about financial aid?",
				"Will dropping a class affect my financial aid?",
			},
			Categories: []string{"financial", "aid"},
			Metadata:   map[string]string{},
			FollowUpQuestions: []string{
				"Have you already submitted your aid documents for this year?",
			},
		},
		{
			ID:       "transcript-request",
			Subject:  "Requesting your transcript",
			Response: "Hello {student_name},\n\nOfficial transcripts are ordered through the registrar's transcript service in the student portal under Records. Electronic copies are usually delivered within one business day; mailed copies take up to a week. Unofficial transcripts can be downloaded immediately from the same page.\n\nBest,\nAcademic Advising Team",
			Utterances: []string{
				"How do I get a copy of my transcript?",
				"I need to request an official transcript",
				"Where can I download my academic record?",
			},
			Categories: []string{"records", "transcript"},
			Metadata:   map[string]string{},
			FollowUpQuestions: []string{
				"Do you need an official or unofficial copy?",
			},
		},
		{
			ID:       "advising-appointment",
			Subject:  "Scheduling an advising appointment",
			Response: "Hello {student_name},\n\nYou can book an advising appointment through the scheduling link in the student portal, or reply with two or three times that work for you and we will confirm one. Appointments fill quickly near the {registration_deadline}, so booking early is recommended.\n\nBest,\nAcademic Advising Team",
			Utterances: []string{
				"How do I schedule an appointment with an advisor?",
				"I would like to book an advising meeting",
				"Can I make an appointment to discuss my schedule?",
			},
			Categories: []string{"appointment", "advising"},
			Metadata:   map[string]string{},
			FollowUpQuestions: []string{
				"Would you prefer an in-person or virtual meeting?",
			},
		},
	}
}

// DefaultReferences returns the built-in reference corpus used when no
// corpus file is configured.
func DefaultReferences() []ReferenceDoc {
	return []ReferenceDoc{
		{
			Title:      "Academic calendar",
			URL:        "https://registrar.university.edu/calendar",
			Content:    "Key dates for each term including registration open and close dates, add drop deadline, withdrawal deadline, and final exam schedule.",
			Categories: []string{"registration", "deadline"},
		},
		{
			Title:      "Course withdrawal policy",
			URL:        "https://registrar.university.edu/withdrawal",
			Content:    "Policy for dropping or withdrawing from courses, refund schedule, and how withdrawals appear on the transcript.",
			Categories: []string{"withdrawal", "registration"},
		},
		{
			Title:      "Financial aid office",
			URL:        "https://finaid.university.edu",
			Content:    "Financial aid contacts, disbursement schedule, satisfactory academic progress requirements, and enrollment level rules.",
			Categories: []string{"financial", "aid"},
		},
		{
			Title:      "Transcript ordering guide",
			URL:        "https://registrar.university.edu/transcripts",
			Content:    "Step by step guide for ordering official transcripts and downloading unofficial academic records.",
			Categories: []string{"transcript", "records"},
		},
	}
}
