package models

import "encoding/json"

// Submission is the thread header shown before the comment blocks.
type Submission struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Upvotes   int    `json:"upvotes"`
	Permalink string `json:"permalink"`
}

// Comment is one top-level reply fetched from the thread.
type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Upvotes   int    `json:"upvotes"`
	Text      string `json:"text"`
	Permalink string `json:"permalink"`
}

// Wire shapes for the /comments/{id} endpoint. The response is a two-element
// array: a listing holding the t3 submission, then a listing of t1 comments
// (plus unexpanded "more" stubs).

type RedditListing struct {
	Kind string            `json:"kind"`
	Data RedditListingData `json:"data"`
}

type RedditListingData struct {
	After    string           `json:"after"`
	Children []RedditAPIChild `json:"children"`
}

type RedditAPIChild struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type RedditSubmissionData struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Ups       int    `json:"ups"`
	Permalink string `json:"permalink"`
}

type RedditCommentData struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	Ups       int    `json:"ups"`
	Permalink string `json:"permalink"`
}
