package lifecycle

import (
	"math/rand"
	"testing"
)

func TestSelectAction(t *testing.T) {
	cases := []struct {
		args []string
		want Action
	}{
		{nil, ActionHelp},
		{[]string{}, ActionHelp},
		{[]string{"./app"}, ActionHelp},
		{[]string{"./app", "status"}, ActionStatus},
		{[]string{"./app", "start"}, ActionStart},
		{[]string{"./app", "stop"}, ActionStop},
		{[]string{"./app", "daemon"}, ActionDaemon},
		{[]string{"./app", "help"}, ActionHelp},
		{[]string{"./app", "--verbose", "stop", "start"}, ActionStop},
		{[]string{"./app", "daemon", "status"}, ActionDaemon},
		{[]string{"./app", "STATUS", "Start", "stopp", " daemon"}, ActionHelp},
		{[]string{"./app", "restart", "x", "start"}, ActionStart},
		// argument 0 is not special
		{[]string{"status", "stop"}, ActionStatus},
	}
	for _, tc := range cases {
		if got := SelectAction(tc.args); got != tc.want {
			t.Fatalf("SelectAction(%q) = %s, want %s", tc.args, got, tc.want)
		}
	}
}

func TestSelectActionWithoutKeywordsIsHelp(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	noise := []string{"", "./app", "help", "-d", "--daemon", "statuss", "tart", "Stop", "DAEMON", "start ", "x"}
	for i := 0; i < 500; i++ {
		n := r.Intn(12)
		args := make([]string, n)
		for j := range args {
			args[j] = noise[r.Intn(len(noise))]
		}
		if got := SelectAction(args); got != ActionHelp {
			t.Fatalf("SelectAction(%q) = %s, want help", args, got)
		}
	}
}

func TestSelectActionFirstKeywordWins(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	keywords := []Action{ActionStatus, ActionStart, ActionStop, ActionDaemon}
	noise := []string{"./app", "-v", "help", "restart"}
	for i := 0; i < 500; i++ {
		var args []string
		for j := r.Intn(4); j > 0; j-- {
			args = append(args, noise[r.Intn(len(noise))])
		}
		first := keywords[r.Intn(len(keywords))]
		args = append(args, string(first))
		for j := r.Intn(4); j > 0; j-- {
			args = append(args, string(keywords[r.Intn(len(keywords))]))
		}
		if got := SelectAction(args); got != first {
			t.Fatalf("SelectAction(%q) = %s, want %s", args, got, first)
		}
	}
}

func FuzzSelectAction(f *testing.F) {
	f.Add("./app", "status")
	f.Add("daemon", "")
	f.Fuzz(func(t *testing.T, a, b string) {
		got := SelectAction([]string{a, b})
		switch got {
		case ActionStatus, ActionStart, ActionStop, ActionDaemon:
			if string(got) != a && string(got) != b {
				t.Fatalf("selected %s not present in %q %q", got, a, b)
			}
			if string(got) != a && SelectAction([]string{a}) != ActionHelp {
				t.Fatalf("keyword in first position was skipped")
			}
		case ActionHelp:
		default:
			t.Fatalf("unexpected action %q", got)
		}
	})
}
