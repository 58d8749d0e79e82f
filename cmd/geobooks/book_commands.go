package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/geobooks/library-system/pkg/geobooks"
)

func (a *app) booksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage the catalog",
	}
	cmd.AddCommand(
		a.booksListCmd(),
		a.booksAddCmd(),
		a.booksEditCmd(),
		a.booksDeleteCmd(),
	)
	return cmd
}

func (a *app) booksListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog, optionally filtered by name or code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.client.Books(cmd.Context())
			if err != nil {
				return err
			}

			books = geobooks.FilterBooks(books, search)
			if len(books) == 0 {
				fmt.Println("no books found")
				return nil
			}

			for _, b := range books {
				status := "Available"
				if !b.Available() {
					status = "Unavailable"
				}
				fmt.Printf("%-26s %-10s %-20s copies=%-3d [%s]  %s\n",
					b.Name, b.Code, b.Author, b.Copies, status, b.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "substring filter on name or code")
	return cmd
}

// uploadCover sends the local image file to the external host and returns
// its public display URL.
func (a *app) uploadCover(cmd *cobra.Command, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	uploader := geobooks.NewImageUploader("", a.cfg.ImgbbAPIKey)
	return uploader.Upload(cmd.Context(), filepath.Base(path), f)
}

func (a *app) booksAddCmd() *cobra.Command {
	var form geobooks.BookForm
	var imagePath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if imagePath != "" {
				url, err := a.uploadCover(cmd, imagePath)
				if err != nil {
					return err
				}
				form.Image = url
			}

			id, err := a.client.AddBook(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Printf("book added: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "book name")
	cmd.Flags().StringVar(&form.Code, "code", "", "catalog code, e.g. BK-2025")
	cmd.Flags().StringVar(&form.Author, "author", "", "author name")
	cmd.Flags().StringVar(&form.Category, "category", "", "category")
	cmd.Flags().StringVar(&form.Description, "description", "", "short description")
	cmd.Flags().IntVar(&form.Copies, "copies", 1, "number of copies")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to the cover image file")
	return cmd
}

func (a *app) booksEditCmd() *cobra.Command {
	var imagePath string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book; flags left unset keep the stored values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Pre-populate from the stored record, then overlay changed flags.
			book, err := a.client.Book(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			form := geobooks.EditBookForm{
				Name:        book.Name,
				Code:        book.Code,
				Author:      book.Author,
				Category:    book.Category,
				Description: book.Description,
				Copies:      book.Copies,
			}
			overlay := func(flag string, dst *string) {
				if cmd.Flags().Changed(flag) {
					*dst, _ = cmd.Flags().GetString(flag)
				}
			}
			overlay("name", &form.Name)
			overlay("code", &form.Code)
			overlay("author", &form.Author)
			overlay("category", &form.Category)
			overlay("description", &form.Description)
			if cmd.Flags().Changed("copies") {
				form.Copies, _ = cmd.Flags().GetInt("copies")
			}

			// No new image chosen means the stored cover stays untouched.
			if imagePath != "" {
				url, err := a.uploadCover(cmd, imagePath)
				if err != nil {
					return err
				}
				form.Image = url
			}

			modified, err := a.client.UpdateBook(cmd.Context(), args[0], form)
			if err != nil {
				return err
			}
			fmt.Printf("book updated (modified=%d)\n", modified)
			return nil
		},
	}

	cmd.Flags().String("name", "", "book name")
	cmd.Flags().String("code", "", "catalog code")
	cmd.Flags().String("author", "", "author name")
	cmd.Flags().String("category", "", "category")
	cmd.Flags().String("description", "", "short description")
	cmd.Flags().Int("copies", 0, "number of copies")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to a replacement cover image")
	return cmd
}

func (a *app) booksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteBook(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("book deleted")
			return nil
		},
	}
}
