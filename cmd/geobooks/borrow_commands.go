package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geobooks/library-system/pkg/geobooks"
)

func (a *app) borrowCmd() *cobra.Command {
	var email, roll string

	cmd := &cobra.Command{
		Use:   "borrow <book-id>",
		Short: "Record a borrow transaction for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.client.Book(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			id, err := a.client.Borrow(cmd.Context(), geobooks.BorrowForm{
				Email:    email,
				Roll:     roll,
				BookID:   book.ID,
				BookName: book.Name,
				BookCode: book.Code,
				Author:   book.Author,
				Copies:   book.Copies,
			})
			if err != nil {
				return err
			}

			fmt.Printf("borrow recorded: %s (%s -> roll %s)\n", id, book.Name, roll)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "borrower email")
	cmd.Flags().StringVar(&roll, "roll", "", "borrower roll identifier")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("roll")
	return cmd
}

func (a *app) returnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "return <borrow-id> <book-code>",
		Short: "Mark a borrow record as returned",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modified, err := a.client.Return(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if modified == 0 {
				fmt.Println("nothing to return")
				return nil
			}
			fmt.Println("book marked as returned")
			return nil
		},
	}
}

func (a *app) myBorrowsCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "my-borrows",
		Short: "List your borrow history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				identity, err := a.client.Me(cmd.Context())
				if err != nil {
					return err
				}
				email = identity.Email
			}

			recs, err := a.client.MyBorrows(cmd.Context(), email)
			if err != nil {
				return err
			}
			printBorrows(recs)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "borrower email (defaults to the session email)")
	return cmd
}

func (a *app) openBorrowsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "open-borrows",
		Short: "List not-yet-returned borrows across all borrowers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.client.AllBorrows(cmd.Context())
			if err != nil {
				return err
			}

			open := geobooks.FilterBorrowsByRoll(geobooks.NotReturned(recs), search)
			printBorrows(open)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "roll", "r", "", "substring filter on roll")
	return cmd
}

func printBorrows(recs []geobooks.BorrowRecord) {
	if len(recs) == 0 {
		fmt.Println("no borrowed books found")
		return
	}
	for _, r := range recs {
		status := "Not Returned"
		if r.Returned {
			status = "Returned"
		}
		fmt.Printf("%-26s %-10s roll=%-8s %s [%s]  %s\n",
			r.BookName, r.BookCode, r.Roll, r.BorrowDate.Format("02 Jan 2006"), status, r.ID)
	}
}
