package seed

import (
	"context"
	"fmt"
	"strings"

	"medialane/internal/auth"
	"medialane/internal/featureflags"
	"medialane/internal/middleware"
	"medialane/internal/models"
	"medialane/internal/repository"
	"medialane/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every generated demo account.
const DemoPassword = "Passw0rd"

// Options configure demo content generation.
type Options struct {
	Users            int
	ArticlesPerUser  int
	VideosPerCreator int
	// Seed makes the generated content reproducible. Zero picks a random seed.
	Seed int64
	// FastHash uses the minimum bcrypt cost.
	FastHash bool
}

// Summary counts what Demo created.
type Summary struct {
	Users    int
	Articles int
	Videos   int
	Likes    int
	Comments int
	Rates    int
}

var demoRoles = []models.Role{models.RoleViewerClient, models.RoleVideoClient, models.RoleAdsClient}

// Demo creates fake accounts and content through the service layer, so every
// row obeys the same validation and slug rules as API traffic. Content is
// published immediately.
func Demo(ctx context.Context, db *gorm.DB, opts Options) (Summary, error) {
	faker := gofakeit.New(opts.Seed)
	flags := featureflags.NewManager(featureflags.AutoApproveArticles + "=on," + featureflags.AutoApproveVideos + "=on")

	users := service.NewUserService(repository.NewUserRepository(db), auth.NewTokenManager("seed"))
	if opts.FastHash {
		users.WithHashCost(bcrypt.MinCost)
	}
	articles := service.NewArticleService(repository.NewArticleRepository(db), flags)
	videos := service.NewVideoService(repository.NewVideoRepository(db), repository.NewCategoryRepository(db), flags)
	reactions := service.NewReactionService(repository.NewLikeRepository(db), repository.NewBookmarkRepository(db), articles)
	comments := service.NewCommentService(repository.NewCommentRepository(db), articles)
	rates := service.NewRateService(repository.NewRateRepository(db), videos)

	var (
		summary     Summary
		actors      []service.Actor
		articleSlug []string
		videoSlug   []string
	)

	for i := 0; i < opts.Users; i++ {
		name := demoUserName(faker.Username(), i)
		session, err := users.Signup(ctx, service.SignupInput{
			UserName: name,
			Email:    name + "@example.com",
			Password: DemoPassword,
			Role:     demoRoles[i%len(demoRoles)],
		})
		if err != nil {
			return summary, fmt.Errorf("create demo user %s: %w", name, err)
		}
		actors = append(actors, service.Actor{ID: session.User.ID, UserName: session.User.UserName, Role: session.User.Role})
		summary.Users++
	}

	for _, actor := range actors {
		for j := 0; j < opts.ArticlesPerUser; j++ {
			article, err := articles.Create(ctx, actor, service.CreateArticleInput{
				Title:   strings.TrimSuffix(faker.Sentence(5), "."),
				Summary: faker.Paragraph(1, 4, 12, " "),
				Body:    faker.Paragraph(3, 5, 15, "\n\n"),
				Tags:    []string{faker.Word(), faker.Word()},
			})
			if err != nil {
				return summary, fmt.Errorf("create demo article: %w", err)
			}
			articleSlug = append(articleSlug, article.Slug)
			summary.Articles++
		}

		if actor.Role != models.RoleVideoClient {
			continue
		}
		for j := 0; j < opts.VideosPerCreator; j++ {
			video, err := videos.Create(ctx, actor, service.CreateVideoInput{
				Title:       strings.TrimSuffix(faker.Sentence(4), "."),
				Link:        fmt.Sprintf("https://videos.example.com/watch/%s", faker.UUID()),
				Description: faker.Sentence(12),
				Tags:        []string{faker.Word()},
				Category:    models.CategoryNames[faker.Number(0, len(models.CategoryNames)-1)],
			})
			if err != nil {
				return summary, fmt.Errorf("create demo video: %w", err)
			}
			videoSlug = append(videoSlug, video.Slug)
			summary.Videos++
		}
	}

	// Every user reacts to a random half of the content.
	for _, actor := range actors {
		for _, slug := range articleSlug {
			if !faker.Bool() {
				continue
			}
			if _, err := reactions.Like(ctx, actor, slug); err == nil {
				summary.Likes++
			}
			if faker.Number(0, 3) == 0 {
				if _, err := comments.Create(ctx, actor, slug, faker.Sentence(10)); err == nil {
					summary.Comments++
				}
			}
		}
		for _, slug := range videoSlug {
			if !faker.Bool() {
				continue
			}
			if _, err := rates.Rate(ctx, actor, slug, faker.Number(1, 5)); err == nil {
				summary.Rates++
			}
		}
	}

	middleware.Logger.Info("demo content seeded",
		"users", summary.Users, "articles", summary.Articles, "videos", summary.Videos,
		"likes", summary.Likes, "comments", summary.Comments, "rates", summary.Rates)
	return summary, nil
}

// demoUserName turns a fake user name into one that passes validation and
// stays unique across the run.
func demoUserName(base string, i int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if len(name) > 20 {
		name = name[:20]
	}
	if name == "" {
		name = "user"
	}
	return fmt.Sprintf("%s%d", name, i)
}
