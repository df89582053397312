// Package candidate resolves which owning IDs an actor may search.
//
// Candidates come from the tag_matches relation: every row links an actor to a
// target through a shared interest or skill tag. [Resolver.CandidateIDs] reads
// all rows of the actor on each call, so newly added tags take effect on the
// next search. Repeated targets are collapsed in order of first occurrence.
package candidate
