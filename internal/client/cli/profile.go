package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/skilllink/skilllink/internal/client/media"
	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/common"
)

func printProfile(p models.Profile) {
	str := func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	}
	fmt.Printf("ID:       %s\n", p.ID)
	fmt.Printf("Username: %s\n", str(p.Username))
	fmt.Printf("Name:     %s\n", str(p.FullName))
	fmt.Printf("Location: %s\n", str(p.Location))
	fmt.Printf("Skills:   %s\n", str(p.Skills))
	fmt.Printf("Bio:      %s\n", str(p.Bio))
	fmt.Printf("Avatar:   %s\n", str(p.AvatarURL))
}

// MyProfile shows the authenticated user's own profile row.
func (a *App) MyProfile(ctx context.Context) error {
	user, err := a.sessions.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	return a.ShowProfile(ctx, user.ID)
}

// ShowProfile shows the profile for the given user id.
func (a *App) ShowProfile(ctx context.Context, userID string) error {
	profile, err := a.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No profile found for that user.")
			return nil
		}
		return err
	}
	printProfile(profile)
	return nil
}

// EditProfile interactively fills in the profile fields and saves them,
// creating the row on first use. Empty answers leave existing values
// untouched.
func (a *App) EditProfile(ctx context.Context) error {
	user, err := a.sessions.GetCurrentUser(ctx)
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Username (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Full name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	skills, err := getSimpleText(a.reader, "Skills, comma separated (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	bio, err := GetMultiline(a.reader, "Bio (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	_, err = a.profiles.GetByID(ctx, user.ID)
	switch {
	case errors.Is(err, common.ErrNotFound):
		insert := models.ProfileInsert{
			ID:       user.ID,
			Username: opt(username),
			FullName: opt(fullName),
			Location: opt(location),
			Skills:   opt(skills),
			Bio:      opt(bio),
		}
		if _, err := a.profiles.Create(ctx, insert); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		patch := models.ProfileUpdate{
			Username: opt(username),
			FullName: opt(fullName),
			Location: opt(location),
			Skills:   opt(skills),
			Bio:      opt(bio),
		}
		if _, err := a.profiles.Update(ctx, user.ID, patch); err != nil {
			return err
		}
	}

	fmt.Println("Profile saved")
	return nil
}

// UploadAvatar uploads the image at path and points the profile's avatar
// at the resulting public URL.
func (a *App) UploadAvatar(ctx context.Context, path string) error {
	user, err := a.sessions.GetCurrentUser(ctx)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	file := media.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}

	return a.uploader.UploadAndNotify(ctx, file, func(url string) {
		patch := models.ProfileUpdate{AvatarURL: &url}
		if _, err := a.profiles.Update(ctx, user.ID, patch); err != nil {
			a.log.Error(ctx, "avatar profile update failed", "error", err)
			fmt.Println("Upload finished but the profile update failed:", err.Error())
			return
		}
		fmt.Println("Avatar updated:", url)
	})
}
