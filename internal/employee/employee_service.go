package employee

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"go-leaveflow/internal/domain"
)

const (
	ProfileKeyPrefix = "employees:profile:"
	profileCacheTTL  = 5 * time.Minute
)

// ErrEmployeeNotFound is the storage-agnostic miss signal callers match on.
var ErrEmployeeNotFound = errors.New("employee not found")

func GetProfileKey(companyID, employeeID string) string {
	return ProfileKeyPrefix + companyID + ":" + employeeID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetProfile(ctx context.Context, companyID, employeeID string) (domain.EmployeeProfile, error)
	BelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetProfile reads the eligibility-relevant slice of an employee through
// a redis read-through cache; concurrent misses for the same employee
// collapse into one DB round-trip via singleflight. Profiles are
// read-only to this service, so a short TTL is the only invalidation.
func (s *service) GetProfile(ctx context.Context, companyID, employeeID string) (domain.EmployeeProfile, error) {
	cacheKey := GetProfileKey(companyID, employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var profile domain.EmployeeProfile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return profile, nil
			}
			s.logger.Warn("corrupt profile cache entry, falling through",
				zap.String("cache_key", cacheKey),
			)
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		e, err := s.repo.FindByIDAndCompany(ctx, companyID, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.EmployeeProfile{}, ErrEmployeeNotFound
			}
			return domain.EmployeeProfile{}, err
		}

		profile := mapToProfile(e)

		if s.rdb != nil {
			if payload, err := json.Marshal(profile); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, profileCacheTTL).Err(); err != nil {
					s.logger.Warn("profile cache write failed",
						zap.String("cache_key", cacheKey),
						zap.Error(err),
					)
				}
			}
		}

		return profile, nil
	})
	if err != nil {
		return domain.EmployeeProfile{}, err
	}

	return v.(domain.EmployeeProfile), nil
}

func (s *service) BelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	return s.repo.BelongsToCompany(ctx, companyID, employeeID)
}

func mapToProfile(e *Employee) domain.EmployeeProfile {
	balance := make(map[domain.LeaveType]int, len(e.Balances))
	for _, b := range e.Balances {
		balance[b.LeaveType] = b.RemainingDays
	}
	return domain.EmployeeProfile{
		EmployeeID:       e.ID.String(),
		FullName:         e.FullName,
		Gender:           e.Gender,
		EmploymentStatus: e.EmploymentStatus,
		LeaveBalance:     balance,
	}
}
