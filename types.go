package main

// Submission is the view of a subreddit post used by the pipeline.
type Submission struct {
	ID         string
	Title      string
	SelfText   string
	IsSelf     bool
	Stickied   bool
	CreatedUTC int64
	Permalink  string
}

// NarratedPost is produced for each submission that passed filtering and was
// synthesized (or reused from the audio cache) this run. It is consumed by
// the page renderer and never persisted.
type NarratedPost struct {
	ID         string
	Title      string
	Text       string
	AudioFile  string
	CreatedUTC int64
	URL        string
}
