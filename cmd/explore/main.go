// Command explore builds a small sample network and runs the three
// canonical analyses against it: high-activity users, filtered
// high-reading-level users, and low-activity (likely new) users. Useful
// as a smoke test and as a worked example of the engine's API.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenthands/pulse/internal/core"
	"github.com/agenthands/pulse/internal/core/filter"
	"github.com/agenthands/pulse/internal/core/model"
	"github.com/agenthands/pulse/internal/core/scoring"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	network := buildSampleNetwork()
	explorer := core.NewExplorer(network.Snapshot())

	two := 2.0
	ten := 10.0

	fmt.Println("=== Example 1: Users with High Post Activity ===")
	highPosters := explorer.InterestingUsers(scoring.Criteria{
		PostCountPreference: scoring.PreferHigh,
		PostWeight:          &two,
	}, nil, 3)
	printUsers(highPosters)

	fmt.Println()
	fmt.Println("=== Example 2: Seoul Users with High Reading Levels ===")
	seoulReaders := explorer.InterestingUsers(scoring.Criteria{
		ReadingLevelPreference: scoring.PreferHigh,
		ReadingWeight:          &ten,
		CommentPreference:      scoring.PreferHigh,
	}, filter.Spec{"region": "Seoul"}, 3)
	printUsers(seoulReaders)

	fmt.Println()
	fmt.Println("=== Example 3: Low Activity Users (New Users) ===")
	lowActivity := explorer.InterestingUsers(scoring.Criteria{
		PostCountPreference: scoring.PreferLow,
		PostWeight:          &two,
		CommentPreference:   scoring.PreferLow,
	}, nil, 3)
	printUsers(lowActivity)

	fmt.Println()
	fmt.Println("=== Trending Posts ===")
	trendingPosts := explorer.TrendingPosts(nil, nil, nil, 3)
	for i, p := range trendingPosts {
		fmt.Printf("%d. %s (Score: %.1f) %q\n", i+1, p.ID, p.Score, p.Attributes.Str("content", ""))
	}

	fmt.Println()
	fmt.Println("=== Visualization Data ===")
	viz := explorer.VizData(highPosters)
	fmt.Printf("Generated %d nodes and %d edges\n", len(viz.Nodes), len(viz.Edges))
	fmt.Printf("Distinct terms for the word cloud: %d\n", len(explorer.WordFrequencies()))
}

func printUsers(results []model.RankedResult) {
	for i, r := range results {
		fmt.Printf("%d. %s (Score: %.1f, Posts: %.0f, Views: %.0f, Reading: %s)\n",
			i+1, r.ID, r.Score,
			r.Attributes.Float("post_count", 0),
			r.Attributes.Float("total_views", 0),
			r.Attributes.Str("reading_level", "medium"))
	}
}

// buildSampleNetwork wires up a handful of users with posts, views,
// comments and a trending view series.
func buildSampleNetwork() *core.Network {
	n := core.NewNetwork()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	users := []model.User{
		{Username: "soobin", Age: 25, Gender: "male", Region: "Seoul"},
		{Username: "beomgyu", Age: 25, Gender: "male", Region: "Daegu"},
		{Username: "taehyun", Age: 24, Gender: "male", Region: "Seoul"},
		{Username: "yeonjun", Age: 25, Gender: "male", Region: "Bundang"},
		{Username: "kai", Age: 24, Gender: "male", Region: "Seoul"},
	}
	for _, u := range users {
		if _, err := n.AddUser(u); err != nil {
			log.Fatalf("Failed to add user: %v", err)
		}
	}

	must(n.Connect("soobin", "beomgyu", "friend"))
	must(n.Connect("taehyun", "yeonjun", "follower"))

	posts := []struct {
		author, id, content string
	}{
		{"soobin", "post_s1", "Social media filters are fun, but they also affect how we see ourselves."},
		{"beomgyu", "post_b1", "Investigating misinformation propagation characteristics throughout interconnected communities."},
		{"taehyun", "post_t1", "Quantitative comparisons between recommendation heuristics demonstrate measurable engagement differentials."},
		{"yeonjun", "post_y1", "Why is social media so addictive? I open one app and an hour disappears!"},
		{"kai", "post_k1", "Just chill for now."},
	}
	for i, p := range posts {
		if _, err := n.MakePost(p.author, p.id, p.content, base.Add(time.Duration(i)*time.Hour)); err != nil {
			log.Fatalf("Failed to make post: %v", err)
		}
	}

	// Per-viewer engagement.
	viewers := map[string][]string{
		"post_s1": {"taehyun", "kai", "beomgyu"},
		"post_b1": {"kai", "soobin"},
		"post_t1": {"soobin"},
		"post_y1": {"soobin", "beomgyu", "taehyun", "kai"},
	}
	for postID, vs := range viewers {
		for j, v := range vs {
			must(n.ViewPost(v, postID, base.Add(time.Duration(j)*time.Minute)))
		}
	}

	// Aggregate series for trending.
	must(n.RecordViewSample("post_y1", base, 100))
	must(n.RecordViewSample("post_y1", base.Add(2*time.Hour), 300))
	must(n.RecordViewSample("post_b1", base, 50))
	must(n.RecordViewSample("post_b1", base.Add(4*time.Hour), 90))

	if _, err := n.CommentOn("taehyun", "post_s1", "", "Totally agree! It's hard to ignore how much filters change things.", base); err != nil {
		log.Fatalf("Failed to comment: %v", err)
	}
	if _, err := n.CommentOn("soobin", "post_y1", "", "That's so real. I always lose time scrolling!", base); err != nil {
		log.Fatalf("Failed to comment: %v", err)
	}

	return n
}

func must(err error) {
	if err != nil {
		log.Fatalf("Failed to build sample network: %v", err)
	}
}
