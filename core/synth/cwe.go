package synth

import "github.com/castinsight/castdash/schema"

// Catalogue returns a fresh copy of the built-in CWE findings.
func Catalogue() []schema.CWEFinding {
	findings := []schema.CWEFinding{
		{
			CWEID:       "CWE-79",
			CWEName:     "Cross-site Scripting (XSS)",
			Description: "The application does not neutralize or incorrectly neutralizes user-controllable input before it is placed in output that is used as a web page.",
			Severity:    schema.RiskHigh,
			Rules: []schema.CWERule{
				{RuleName: "Avoid XSS vulnerabilities in JavaScript", ViolationCount: 8},
				{RuleName: "Sanitize user input in HTML output", ViolationCount: 7},
			},
		},
		{
			CWEID:       "CWE-89",
			CWEName:     "SQL Injection",
			Description: "The application constructs all or part of an SQL command using externally-influenced input but does not neutralize special elements.",
			Severity:    schema.RiskHigh,
			Rules: []schema.CWERule{
				{RuleName: "Use parameterized queries", ViolationCount: 12},
				{RuleName: "Avoid dynamic SQL construction", ViolationCount: 11},
			},
		},
		{
			CWEID:       "CWE-125",
			CWEName:     "Out-of-bounds Read",
			Description: "The application reads data past the end, or before the beginning, of the intended buffer.",
			Severity:    schema.RiskMedium,
			Rules: []schema.CWERule{
				{RuleName: "Check array bounds before access", ViolationCount: 3},
				{RuleName: "Validate buffer size parameters", ViolationCount: 2},
			},
		},
		{
			CWEID:       "CWE-190",
			CWEName:     "Integer Overflow",
			Description: "The application performs a calculation that can produce an integer overflow or wraparound.",
			Severity:    schema.RiskMedium,
			Rules: []schema.CWERule{
				{RuleName: "Check for integer overflow conditions", ViolationCount: 5},
				{RuleName: "Use safe arithmetic operations", ViolationCount: 3},
			},
		},
	}
	for i := range findings {
		for _, rule := range findings[i].Rules {
			findings[i].TotalViolations += rule.ViolationCount
		}
	}
	return findings
}
