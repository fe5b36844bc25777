package cli

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skilllink/skilllink/internal/client/media"
	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/client/services"
	"github.com/skilllink/skilllink/internal/client/view"
)

func skillLine(s models.Skill) string {
	return fmt.Sprintf("#%-5d %-30s [%s]", s.ID, s.Title, s.Category)
}

func renderPage(v *view.View[models.Skill]) {
	items := v.Items()
	if len(items) == 0 {
		fmt.Println("Nothing to show.")
	}
	for _, s := range items {
		fmt.Println(skillLine(s))
	}
	fmt.Printf("-- page %d/%d, %d match(es)", v.Page(), v.TotalPages(), v.Matches())
	if v.Search() != "" {
		fmt.Printf(", filter %q", v.Search())
	}
	fmt.Println(" --")
}

// Browse lists all posts page by page. Inside the pager the user can type
// n/p to move between pages, /term to filter by title, / to clear the
// filter, show <id> to expand a post, r to re-fetch the listing, and q to
// leave. A reload keeps the current page and filter.
func (a *App) Browse(ctx context.Context) error {
	skills, err := a.skills.ListAll(ctx)
	if err != nil {
		return err
	}

	v := view.New(skills, func(s models.Skill) string { return s.Title })

	for {
		renderPage(v)
		cmd, err := getSimpleText(a.reader, "n=next p=prev /term=filter show <id> r=reload q=quit", os.Stdout)
		if err != nil {
			return err
		}

		switch {
		case cmd == "q":
			return nil
		case cmd == "n":
			v.Next()
		case cmd == "p":
			v.Prev()
		case cmd == "r":
			skills, err := a.skills.ListAll(ctx)
			if err != nil {
				fmt.Println("Error:", err.Error())
				continue
			}
			v.Reset(skills)
		case strings.HasPrefix(cmd, "/"):
			v.SetSearch(strings.TrimPrefix(cmd, "/"))
		case strings.HasPrefix(cmd, "show "):
			id, convErr := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(cmd, "show ")), 10, 64)
			if convErr != nil {
				fmt.Println("Usage: show <numeric id>")
				continue
			}
			if err := a.showPost(ctx, id); err != nil {
				fmt.Println("Error:", err.Error())
			}
		case cmd == "":
			// re-render
		default:
			fmt.Println("Unknown pager command:", cmd)
		}
	}
}

func (a *App) showPost(ctx context.Context, id int64) error {
	s, err := a.skills.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Title:    %s\n", s.Title)
	fmt.Printf("Category: %s\n", s.Category)
	fmt.Printf("Author:   %s\n", s.UserID)
	fmt.Printf("Posted:   %s\n", s.CreatedAt.Format("2006-01-02 15:04"))
	if s.Description != nil {
		fmt.Printf("Details:  %s\n", *s.Description)
	}
	if s.ImageURL != "" {
		fmt.Printf("Image:    %s\n", s.ImageURL)
	}
	return nil
}

// AddPost interactively creates a new post. The category is chosen from the
// backend's reference list but free text is accepted too. An optional image
// is uploaded first so its public URL lands on the new row.
func (a *App) AddPost(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}

	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	categories, err := a.skills.Categories(ctx)
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, c.Name)
		}
		fmt.Println("Known categories:", strings.Join(names, ", "))
	}
	category, err := getSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return err
	}

	imagePath, err := getSimpleText(a.reader, "Image file path (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	var imageURL string
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return err
		}
		contentType := mime.TypeByExtension(filepath.Ext(imagePath))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		imageURL, err = a.uploader.Upload(ctx, media.File{
			Name:        filepath.Base(imagePath),
			ContentType: contentType,
			Data:        data,
		})
		if err != nil {
			return err
		}
	}

	skill, err := a.skills.Create(ctx, services.SkillInput{
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		Category:    category,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Posted! Your post id is %d.\n", skill.ID)
	return nil
}

// DeletePost removes one of the caller's posts by id. The backend's row
// rules reject deletes of other authors' posts.
func (a *App) DeletePost(ctx context.Context, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Println("Usage: delete <numeric id>")
		return nil
	}
	if err := a.skills.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Post %d deleted.\n", id)
	return nil
}

// MyPosts lists the authenticated user's own posts.
func (a *App) MyPosts(ctx context.Context) error {
	user, err := a.sessions.GetCurrentUser(ctx)
	if err != nil {
		return err
	}

	skills, err := a.skills.ListByUser(ctx, user.ID)
	if err != nil {
		return err
	}

	if len(skills) == 0 {
		fmt.Println("You have no posts yet.")
		return nil
	}
	for _, s := range skills {
		fmt.Println(skillLine(s))
	}
	return nil
}

// Categories prints the category reference list.
func (a *App) Categories(ctx context.Context) error {
	categories, err := a.skills.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.Description != nil {
			fmt.Printf("%-20s %s\n", c.Name, *c.Description)
		} else {
			fmt.Println(c.Name)
		}
	}
	return nil
}
