// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"childrenlk/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/datatypes"
)

var (
	orgSuffixes = []string{"Preschool", "Learning Centre", "Foundation", "Children's Trust", "Youth Club", "Arts Academy"}
	towns       = []string{"Colombo", "Kandy", "Galle", "Jaffna", "Negombo", "Matara", "Kurunegala", "Batticaloa", "Anuradhapura", "Badulla"}
	seedTags    = []string{"math", "reading", "science", "art", "music", "sports", "health", "nutrition", "safety", "sinhala", "tamil", "english", "storytelling", "nature"}
	ageGroups   = []models.AgeGroup{models.AgeGroup1To5, models.AgeGroup5To10, models.AgeGroup11To15, models.AgeGroup15To18, models.AgeGroupAbove18}
	mediaTypes  = []models.MediaContentType{models.MediaArticle, models.MediaPoem, models.MediaImage, models.MediaVideo, models.MediaAudio}
)

// Factory builds domain entities populated with plausible fake data. It does
// not persist anything.
type Factory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewFactory returns a Factory. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

func (f *Factory) next() int {
	f.seq++
	return f.seq
}

// Phone returns a Sri Lankan mobile number in +94 format.
func (f *Factory) Phone() string {
	return fmt.Sprintf("+947%08d", f.faker.Number(0, 99999999))
}

// Organizer builds an organizer account and the organization it owns.
func (f *Factory) Organizer(passwordHash string) (*models.User, *models.Organization) {
	n := f.next()
	town := towns[f.faker.Number(0, len(towns)-1)]
	orgName := fmt.Sprintf("%s %s", town, orgSuffixes[f.faker.Number(0, len(orgSuffixes)-1)])
	slug := strings.ToLower(strings.ReplaceAll(orgName, " ", ""))
	slug = strings.ReplaceAll(slug, "'", "")

	user := &models.User{
		Name:     f.faker.Name(),
		Email:    fmt.Sprintf("organizer%d@%s.lk", n, slug),
		Password: passwordHash,
		Role:     models.RoleOrganizer,
		Phone:    f.Phone(),
	}
	org := &models.Organization{
		Name:         orgName,
		Description:  f.faker.Paragraph(1, 3, 12, " "),
		Logo:         f.imageURL("logos"),
		ContactEmail: user.Email,
		ContactPhone: user.Phone,
		Address:      fmt.Sprintf("%d %s, %s", f.faker.Number(1, 400), f.faker.StreetName(), town),
		Website:      fmt.Sprintf("https://www.%s.lk", slug),
	}
	return user, org
}

// Parent builds a parent account.
func (f *Factory) Parent(passwordHash string) *models.User {
	return &models.User{
		Name:     f.faker.Name(),
		Email:    fmt.Sprintf("parent%d@example.lk", f.next()),
		Password: passwordHash,
		Role:     models.RoleParent,
		Phone:    f.Phone(),
	}
}

// Request builds an unsaved request of kind.
func (f *Factory) Request(kind models.RequestKind) models.Request {
	switch kind {
	case models.KindResource:
		return &models.ResourceRequest{ResourcePayload: models.ResourcePayload{
			Name:             f.title(),
			ShortDescription: f.faker.Sentence(12),
			Description:      f.faker.Paragraph(2, 4, 14, "\n\n"),
			Documents:        datatypes.JSONSlice[models.Attachment]{f.attachment("resources", models.AttachmentPDF)},
			Tags:             f.tags(),
			Audience:         f.audience(),
		}}
	case models.KindMedia:
		ct := mediaTypes[f.faker.Number(0, len(mediaTypes)-1)]
		p := models.MediaPayload{
			Name:        f.title(),
			Description: f.faker.Sentence(14),
			ContentType: ct,
			Tags:        f.tags(),
			Audience:    f.audience(),
		}
		if ct.IsText() {
			p.TextContent = f.faker.Paragraph(3, 5, 12, "\n\n")
		} else {
			p.Files = datatypes.JSONSlice[models.Attachment]{f.attachment("media", ct.AttachmentType())}
		}
		return &models.MediaRequest{MediaPayload: p}
	case models.KindEvent:
		start := time.Now().AddDate(0, 0, f.faker.Number(3, 90)).Truncate(time.Hour)
		end := start.Add(time.Duration(f.faker.Number(2, 8)) * time.Hour)
		return &models.EventRequest{EventPayload: models.EventPayload{
			Name:        f.title(),
			Location:    fmt.Sprintf("%s, %s", f.faker.StreetName(), towns[f.faker.Number(0, len(towns)-1)]),
			StartDate:   start,
			EndDate:     &end,
			Description: f.faker.Paragraph(2, 3, 14, "\n\n"),
			Images:      datatypes.JSONSlice[models.Attachment]{f.attachment("events", models.AttachmentImage)},
			Tags:        f.tags(),
			Audience:    f.audience(),
		}}
	case models.KindSuperHero:
		return &models.SuperHeroRequest{SuperHeroPayload: models.SuperHeroPayload{
			Name:             f.faker.Name(),
			Icon:             datatypes.NewJSONType(f.attachment("super-heroes", models.AttachmentImage)),
			Phone:            f.Phone(),
			ShortDescription: f.faker.JobTitle() + " helping children in " + towns[f.faker.Number(0, len(towns)-1)],
			Description:      f.faker.Paragraph(1, 3, 14, " "),
			Tags:             f.tags(),
		}}
	}
	return nil
}

func (f *Factory) title() string {
	return strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 6)), ".")
}

func (f *Factory) tags() datatypes.JSONSlice[string] {
	n := f.faker.Number(1, 3)
	out := make([]string, 0, n)
	for _, i := range f.faker.Rand.Perm(len(seedTags))[:n] {
		out = append(out, seedTags[i])
	}
	return out
}

func (f *Factory) audience() models.Audience {
	if f.faker.Bool() {
		return models.Audience{TargetAudience: models.AudiencePeopleWorkForChildren}
	}
	g := ageGroups[f.faker.Number(0, len(ageGroups)-1)]
	return models.Audience{TargetAudience: models.AudienceChildren, AgeGroup: &g}
}

func (f *Factory) attachment(folder string, t models.AttachmentType) models.Attachment {
	id := fmt.Sprintf("%s/%s", folder, f.faker.UUID())
	url := f.imageURL(folder)
	if t != models.AttachmentImage {
		url = fmt.Sprintf("https://files.children.lk/%s.%s", id, t)
	}
	return models.Attachment{URL: url, PublicID: id, Type: t}
}

func (f *Factory) imageURL(folder string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s-%s/800/600", folder, f.faker.UUID())
}
