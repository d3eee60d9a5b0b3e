package repositories

import (
	"gorm.io/gorm"

	apperrors "tracker-server/pkg/errors"
)

// Repositories bundles every repository plus the transaction manager. All of
// them share one database handle, so transactions started through Tx apply to
// each of them.
type Repositories struct {
	Profiles    ProfileRepository
	Teams       TeamRepository
	Members     MemberRepository
	Invitations InvitationRepository
	Items       ItemRepository
	Tags        TagRepository
	Providers   ProviderRepository
	Tx          TxManager
}

// New wires all GORM-backed repositories onto one database handle.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Profiles:    NewProfileRepository(db),
		Teams:       NewTeamRepository(db),
		Members:     NewMemberRepository(db),
		Invitations: NewInvitationRepository(db),
		Items:       NewItemRepository(db),
		Tags:        NewTagRepository(db),
		Providers:   NewProviderRepository(db),
		Tx:          NewTxManager(db),
	}
}

// translate converts GORM errors into coded application errors at the
// repository boundary. Services branch on codes, never on driver errors.
func translate(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NewAppError(apperrors.ErrNotFound, notFoundMsg, err)
	case apperrors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.NewAppError(apperrors.ErrConflict, conflictMsg, err)
	default:
		return apperrors.NewAppError(apperrors.ErrInternal, "database error", err)
	}
}
