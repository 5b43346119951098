// Package ingest loads a social-network dataset from JSON into a
// Network. Ingestion is lenient the way the engine requires: a malformed
// record fails alone, the rest of the batch goes through, and the caller
// gets a report of what was skipped.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/agenthands/pulse/internal/core"
	"github.com/agenthands/pulse/internal/core/model"
)

// Dataset is the wire shape. Posts accept two alternate view encodings:
// "views" as aggregate {timestamp, count} samples (the trending series)
// or "viewers" as per-viewer {viewer, timestamp} events.
type Dataset struct {
	Users []UserRecord `json:"users"`
}

type UserRecord struct {
	Username    string             `json:"username"`
	RealName    string             `json:"real_name"`
	Age         int                `json:"age"`
	Gender      string             `json:"gender"`
	Region      string             `json:"region"`
	Connections []ConnectionRecord `json:"connections"`
	Posts       []PostRecord       `json:"posts"`
}

type ConnectionRecord struct {
	Relation string `json:"relation"`
	Username string `json:"username"`
}

type PostRecord struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	Timestamp string          `json:"timestamp"`
	Views     []ViewSample    `json:"views"`
	Viewers   []ViewerRecord  `json:"viewers"`
	Comments  []CommentRecord `json:"comments"`
}

type ViewSample struct {
	Timestamp string `json:"timestamp"`
	Count     int    `json:"count"`
}

type ViewerRecord struct {
	Viewer    string `json:"viewer"`
	Timestamp string `json:"timestamp"`
}

type CommentRecord struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// RecordError ties a skipped record to what was wrong with it.
type RecordError struct {
	Record string `json:"record"`
	Reason string `json:"reason"`
}

func (e RecordError) Error() string {
	return fmt.Sprintf("%s: %s", e.Record, e.Reason)
}

// Report summarizes an ingestion run.
type Report struct {
	Users    int           `json:"users"`
	Posts    int           `json:"posts"`
	Comments int           `json:"comments"`
	Views    int           `json:"views"`
	Errors   []RecordError `json:"errors,omitempty"`
}

func (r *Report) fail(record string, err error) {
	r.Errors = append(r.Errors, RecordError{Record: record, Reason: err.Error()})
}

// Parse decodes a dataset document and builds a Network from it. The
// returned error is non-nil only when the document itself cannot be
// decoded; per-record problems land in the report and the rest of the
// batch proceeds.
func Parse(r io.Reader) (*core.Network, *Report, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return Build(&ds)
}

// Build assembles a Network from a decoded dataset. Users first so posts,
// views and comments can cross-reference any user in the document.
func Build(ds *Dataset) (*core.Network, *Report, error) {
	n := core.NewNetwork()
	report := &Report{}

	for i, ur := range ds.Users {
		if ur.Username == "" {
			report.fail(fmt.Sprintf("users[%d]", i), fmt.Errorf("missing username"))
			continue
		}
		_, err := n.AddUser(model.User{
			Username: ur.Username,
			RealName: ur.RealName,
			Age:      ur.Age,
			Gender:   ur.Gender,
			Region:   ur.Region,
		})
		if err != nil {
			report.fail(fmt.Sprintf("users[%d]", i), err)
			continue
		}
		report.Users++
	}

	for _, ur := range ds.Users {
		if ur.Username == "" {
			continue
		}
		for _, cr := range ur.Connections {
			if cr.Username == "" {
				report.fail(fmt.Sprintf("users[%s].connections", ur.Username), fmt.Errorf("missing target username"))
				continue
			}
			relation := cr.Relation
			if relation == "" {
				relation = "follows"
			}
			if err := n.Connect(ur.Username, cr.Username, relation); err != nil {
				report.fail(fmt.Sprintf("users[%s].connections", ur.Username), err)
			}
		}

		for _, pr := range ur.Posts {
			if err := addPost(n, report, ur.Username, pr); err != nil {
				report.fail(fmt.Sprintf("users[%s].posts[%s]", ur.Username, pr.ID), err)
			}
		}
	}

	return n, report, nil
}

func addPost(n *core.Network, report *Report, author string, pr PostRecord) error {
	if pr.ID == "" {
		return fmt.Errorf("missing post id")
	}
	if pr.Content == "" {
		return fmt.Errorf("missing content")
	}

	at, err := parseTime(pr.Timestamp)
	if err != nil {
		return fmt.Errorf("bad timestamp: %w", err)
	}

	if _, err := n.MakePost(author, pr.ID, pr.Content, at); err != nil {
		return err
	}
	report.Posts++

	for i, vs := range pr.Views {
		at, err := parseTime(vs.Timestamp)
		if err != nil || vs.Timestamp == "" {
			report.fail(fmt.Sprintf("posts[%s].views[%d]", pr.ID, i), fmt.Errorf("bad timestamp"))
			continue
		}
		if err := n.RecordViewSample(pr.ID, at, vs.Count); err != nil {
			report.fail(fmt.Sprintf("posts[%s].views[%d]", pr.ID, i), err)
			continue
		}
		report.Views++
	}

	for i, vr := range pr.Viewers {
		if vr.Viewer == "" {
			report.fail(fmt.Sprintf("posts[%s].viewers[%d]", pr.ID, i), fmt.Errorf("missing viewer"))
			continue
		}
		at, err := parseTime(vr.Timestamp)
		if err != nil {
			report.fail(fmt.Sprintf("posts[%s].viewers[%d]", pr.ID, i), fmt.Errorf("bad timestamp"))
			continue
		}
		if err := n.ViewPost(vr.Viewer, pr.ID, at); err != nil {
			report.fail(fmt.Sprintf("posts[%s].viewers[%d]", pr.ID, i), err)
			continue
		}
		report.Views++
	}

	for i, cr := range pr.Comments {
		if cr.Content == "" {
			report.fail(fmt.Sprintf("posts[%s].comments[%d]", pr.ID, i), fmt.Errorf("missing content"))
			continue
		}
		at, err := parseTime(cr.Timestamp)
		if err != nil {
			report.fail(fmt.Sprintf("posts[%s].comments[%d]", pr.ID, i), fmt.Errorf("bad timestamp"))
			continue
		}
		if _, err := n.CommentOn(cr.Author, pr.ID, cr.ID, cr.Content, at); err != nil {
			report.fail(fmt.Sprintf("posts[%s].comments[%d]", pr.ID, i), err)
			continue
		}
		report.Comments++
	}

	return nil
}

// parseTime accepts RFC 3339; an empty string means "not provided" and
// yields the zero time so the builder can fill in its default.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
