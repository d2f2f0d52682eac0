// Package seed loads a fixed set of demo accounts and books through the
// regular services, so seeded data obeys the same validation and ownership
// rules as real traffic.
package seed

import (
	"context"
	"fmt"

	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/service"
)

const demoPassword = "Read-more-1!"

type fixture struct {
	username string
	books    []service.BookInput
}

var fixtures = []fixture{
	{
		username: "alice",
		books: []service.BookInput{
			{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Status: "read"},
			{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", Genre: "Science Fiction", Status: "reading"},
			{Title: "Piranesi", Author: "Susanna Clarke", Genre: "Fantasy"},
		},
	},
	{
		username: "bob",
		books: []service.BookInput{
			{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Status: "to-read"},
			{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Genre: "Programming", Status: "read", Notes: "re-read the plain text chapter"},
		},
	},
	{
		username: "carol",
		books: []service.BookInput{
			{Title: "Beloved", Author: "Toni Morrison", Genre: "Literary Fiction", Status: "read"},
			{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Genre: "Programming", Status: "reading"},
			{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Status: "reading"},
		},
	},
}

// Demo seeds the demo accounts and their books, logging in instead of
// registering when an account already exists. Books are appended on every
// run; seeding is a dev convenience, not an idempotent migration.
func Demo(ctx context.Context, auth service.AuthService, books service.BookService) (accountCount, bookCount int, err error) {
	for _, f := range fixtures {
		account, _, err := auth.Register(ctx, f.username, demoPassword, demoPassword)
		if err != nil {
			if apperrors.KindOf(err) != apperrors.KindConflict {
				return accountCount, bookCount, fmt.Errorf("seed account %s: %w", f.username, err)
			}
			account, _, err = auth.Login(ctx, f.username, demoPassword)
			if err != nil {
				return accountCount, bookCount, fmt.Errorf("seed login %s: %w", f.username, err)
			}
		}
		accountCount++

		for _, in := range f.books {
			if _, err := books.Create(ctx, account.ID, in); err != nil {
				return accountCount, bookCount, fmt.Errorf("seed book %q for %s: %w", in.Title, f.username, err)
			}
			bookCount++
		}
	}
	return accountCount, bookCount, nil
}
