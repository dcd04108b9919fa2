// Package xbrl extracts dividend timelines from SEC company-facts JSON.
//
// The pipeline runs four stages over one company's payload:
//
//	extract    per-share dividend facts -> candidate records
//	dedup      one survivor per ex-dividend date
//	filter     per-year statistics remove annual-total artifacts
//	score      multiplicative confidence + review flag
//
// Every stage is a pure function over the previous stage's full output;
// no state survives a Parse call. The source data is structurally noisy
// (overlapping tag families, cumulative totals tagged as single events),
// so correctness is heuristic by design: the scorer records each penalty
// it applies and flags low-confidence rows for human review.
package xbrl
