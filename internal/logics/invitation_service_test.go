package logics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"tracker-server/internal/models"
	apperrors "tracker-server/pkg/errors"
)

func newInvitationService(invitations *MockInvitationRepository, members *MockMemberRepository, profiles *MockProfileRepository, teams *MockTeamRepository) *InvitationService {
	return NewInvitationService(
		invitations, members, profiles, teams,
		passthroughTxManager{}, nil, nil, "", "",
		zap.NewNop(),
	)
}

func pendingInvitation(email string) *models.TeamInvitation {
	return &models.TeamInvitation{
		ID:           "0b26c7d8-9c3e-4f1a-8a46-2f14f0e86a01",
		TeamID:       "T01AAAAAAAAA",
		EmailInvited: email,
		InvitedBy:    "U01INVITERAA",
		Role:         models.RoleEditor,
		Status:       models.InvitationStatusPending,
	}
}

func TestInvitationService_CreateInvitation(t *testing.T) {
	inviter := &models.Profile{ID: "U01INVITERAA", Email: "inviter@example.com", Name: "Inviter"}

	tests := []struct {
		name        string
		email       string
		role        models.Role
		mockSetup   func(*MockInvitationRepository, *MockMemberRepository, *MockProfileRepository)
		expectedErr string
	}{
		{
			name:  "invites an unknown email",
			email: "newcomer@example.com",
			role:  models.RoleViewer,
			mockSetup: func(inv *MockInvitationRepository, mem *MockMemberRepository, prof *MockProfileRepository) {
				prof.On("GetByEmail", mock.Anything, "newcomer@example.com").
					Return(nil, apperrors.NewAppError(apperrors.ErrNotFound, "profile not found", nil))
				inv.On("HasPending", mock.Anything, "T01AAAAAAAAA", "newcomer@example.com").Return(false, nil)
				inv.On("Insert", mock.Anything, mock.MatchedBy(func(i *models.TeamInvitation) bool {
					return i.TeamID == "T01AAAAAAAAA" &&
						i.EmailInvited == "newcomer@example.com" &&
						i.Role == models.RoleViewer &&
						i.Status == models.InvitationStatusPending &&
						i.ID != ""
				})).Return(nil)
			},
		},
		{
			name:  "email is lower-cased and trimmed",
			email: "  MixedCase@Example.COM ",
			role:  models.RoleViewer,
			mockSetup: func(inv *MockInvitationRepository, mem *MockMemberRepository, prof *MockProfileRepository) {
				prof.On("GetByEmail", mock.Anything, "mixedcase@example.com").
					Return(nil, apperrors.NewAppError(apperrors.ErrNotFound, "profile not found", nil))
				inv.On("HasPending", mock.Anything, "T01AAAAAAAAA", "mixedcase@example.com").Return(false, nil)
				inv.On("Insert", mock.Anything, mock.MatchedBy(func(i *models.TeamInvitation) bool {
					return i.EmailInvited == "mixedcase@example.com"
				})).Return(nil)
			},
		},
		{
			name:        "self-invite rejected",
			email:       "Inviter@Example.com",
			role:        models.RoleViewer,
			mockSetup:   func(*MockInvitationRepository, *MockMemberRepository, *MockProfileRepository) {},
			expectedErr: apperrors.ErrInvalidArgument,
		},
		{
			name:        "invalid role rejected",
			email:       "newcomer@example.com",
			role:        models.Role("owner"),
			mockSetup:   func(*MockInvitationRepository, *MockMemberRepository, *MockProfileRepository) {},
			expectedErr: apperrors.ErrInvalidArgument,
		},
		{
			name:        "blank email rejected",
			email:       "   ",
			role:        models.RoleViewer,
			mockSetup:   func(*MockInvitationRepository, *MockMemberRepository, *MockProfileRepository) {},
			expectedErr: apperrors.ErrInvalidArgument,
		},
		{
			name:  "existing member rejected",
			email: "member@example.com",
			role:  models.RoleViewer,
			mockSetup: func(inv *MockInvitationRepository, mem *MockMemberRepository, prof *MockProfileRepository) {
				prof.On("GetByEmail", mock.Anything, "member@example.com").
					Return(&models.Profile{ID: "U02MEMBERAAA", Email: "member@example.com"}, nil)
				mem.On("Get", mock.Anything, "T01AAAAAAAAA", "U02MEMBERAAA").
					Return(&models.TeamMember{Role: models.RoleViewer}, nil)
			},
			expectedErr: apperrors.ErrConflict,
		},
		{
			name:  "duplicate pending invitation rejected",
			email: "newcomer@example.com",
			role:  models.RoleViewer,
			mockSetup: func(inv *MockInvitationRepository, mem *MockMemberRepository, prof *MockProfileRepository) {
				prof.On("GetByEmail", mock.Anything, "newcomer@example.com").
					Return(nil, apperrors.NewAppError(apperrors.ErrNotFound, "profile not found", nil))
				inv.On("HasPending", mock.Anything, "T01AAAAAAAAA", "newcomer@example.com").Return(true, nil)
			},
			expectedErr: apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockInv := new(MockInvitationRepository)
			mockMem := new(MockMemberRepository)
			mockProf := new(MockProfileRepository)
			mockTeams := new(MockTeamRepository)
			tt.mockSetup(mockInv, mockMem, mockProf)

			service := newInvitationService(mockInv, mockMem, mockProf, mockTeams)
			invitation, err := service.CreateInvitation(context.Background(), "T01AAAAAAAAA", inviter, tt.email, tt.role)

			if tt.expectedErr != "" {
				assert.True(t, apperrors.HasCode(err, tt.expectedErr), "got %v", err)
				assert.Nil(t, invitation)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, invitation)
			}
			mockInv.AssertExpectations(t)
			mockMem.AssertExpectations(t)
			mockProf.AssertExpectations(t)
		})
	}
}

func TestInvitationService_AcceptInvitation(t *testing.T) {
	invited := &models.Profile{ID: "U03INVITEDAA", Email: "invited@example.com"}

	t.Run("pending invitation enrolls and resolves", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		mockMem := new(MockMemberRepository)
		mockTeams := new(MockTeamRepository)
		inv := pendingInvitation("invited@example.com")

		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
		mockTeams.On("GetByID", mock.Anything, "T01AAAAAAAAA").Return(&models.Team{ID: "T01AAAAAAAAA"}, nil)
		mockMem.On("Insert", mock.Anything, mock.MatchedBy(func(m *models.TeamMember) bool {
			return m.TeamID == "T01AAAAAAAAA" && m.MemberID == "U03INVITEDAA" && m.Role == models.RoleEditor
		})).Return(nil)
		mockInv.On("MarkResolved", mock.Anything, inv.ID, models.InvitationStatusAccepted, mock.AnythingOfType("time.Time")).Return(nil)

		service := newInvitationService(mockInv, mockMem, new(MockProfileRepository), mockTeams)
		err := service.AcceptInvitation(context.Background(), inv.ID, invited)

		assert.NoError(t, err)
		mockInv.AssertExpectations(t)
		mockMem.AssertExpectations(t)
	})

	t.Run("case-insensitive email match accepts", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		mockMem := new(MockMemberRepository)
		mockTeams := new(MockTeamRepository)
		inv := pendingInvitation("invited@example.com")

		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
		mockTeams.On("GetByID", mock.Anything, "T01AAAAAAAAA").Return(&models.Team{ID: "T01AAAAAAAAA"}, nil)
		mockMem.On("Insert", mock.Anything, mock.Anything).Return(nil)
		mockInv.On("MarkResolved", mock.Anything, inv.ID, models.InvitationStatusAccepted, mock.AnythingOfType("time.Time")).Return(nil)

		service := newInvitationService(mockInv, mockMem, new(MockProfileRepository), mockTeams)
		err := service.AcceptInvitation(context.Background(), inv.ID, &models.Profile{ID: "U03INVITEDAA", Email: "Invited@Example.COM"})

		assert.NoError(t, err)
	})

	t.Run("different email cannot accept", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		inv := pendingInvitation("invited@example.com")
		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

		service := newInvitationService(mockInv, new(MockMemberRepository), new(MockProfileRepository), new(MockTeamRepository))
		err := service.AcceptInvitation(context.Background(), inv.ID, &models.Profile{ID: "U04OTHERUSER", Email: "other@example.com"})

		assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthorized))
	})

	t.Run("accepting twice is a no-op success", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		resolvedAt := time.Now()
		inv := pendingInvitation("invited@example.com")
		inv.Status = models.InvitationStatusAccepted
		inv.ResolvedAt = &resolvedAt
		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

		service := newInvitationService(mockInv, new(MockMemberRepository), new(MockProfileRepository), new(MockTeamRepository))
		err := service.AcceptInvitation(context.Background(), inv.ID, invited)

		// No membership insert, no state write: resolved stays resolved.
		assert.NoError(t, err)
	})

	t.Run("declined invitation cannot be accepted", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		inv := pendingInvitation("invited@example.com")
		inv.Status = models.InvitationStatusDeclined
		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

		service := newInvitationService(mockInv, new(MockMemberRepository), new(MockProfileRepository), new(MockTeamRepository))
		err := service.AcceptInvitation(context.Background(), inv.ID, invited)

		assert.True(t, apperrors.HasCode(err, apperrors.ErrConflict))
	})

	t.Run("deleted team invalidates the invitation", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		mockTeams := new(MockTeamRepository)
		inv := pendingInvitation("invited@example.com")
		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
		mockTeams.On("GetByID", mock.Anything, "T01AAAAAAAAA").
			Return(nil, apperrors.NewAppError(apperrors.ErrNotFound, "team not found", nil))

		service := newInvitationService(mockInv, new(MockMemberRepository), new(MockProfileRepository), mockTeams)
		err := service.AcceptInvitation(context.Background(), inv.ID, invited)

		assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
	})

	t.Run("already a member still resolves the invitation", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		mockMem := new(MockMemberRepository)
		mockTeams := new(MockTeamRepository)
		inv := pendingInvitation("invited@example.com")

		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
		mockTeams.On("GetByID", mock.Anything, "T01AAAAAAAAA").Return(&models.Team{ID: "T01AAAAAAAAA"}, nil)
		mockMem.On("Insert", mock.Anything, mock.Anything).
			Return(apperrors.NewAppError(apperrors.ErrConflict, "already a member of this team", nil))
		mockInv.On("MarkResolved", mock.Anything, inv.ID, models.InvitationStatusAccepted, mock.AnythingOfType("time.Time")).Return(nil)

		service := newInvitationService(mockInv, mockMem, new(MockProfileRepository), mockTeams)
		err := service.AcceptInvitation(context.Background(), inv.ID, invited)

		assert.NoError(t, err)
		mockInv.AssertExpectations(t)
	})
}

func TestInvitationService_DeclineInvitation(t *testing.T) {
	invited := &models.Profile{ID: "U03INVITEDAA", Email: "invited@example.com"}

	t.Run("pending invitation declines without enrolling", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		mockMem := new(MockMemberRepository)
		inv := pendingInvitation("invited@example.com")

		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
		mockInv.On("MarkResolved", mock.Anything, inv.ID, models.InvitationStatusDeclined, mock.AnythingOfType("time.Time")).Return(nil)

		service := newInvitationService(mockInv, mockMem, new(MockProfileRepository), new(MockTeamRepository))
		err := service.DeclineInvitation(context.Background(), inv.ID, invited)

		assert.NoError(t, err)
		mockMem.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("declining twice is a no-op success", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		inv := pendingInvitation("invited@example.com")
		inv.Status = models.InvitationStatusDeclined
		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

		service := newInvitationService(mockInv, new(MockMemberRepository), new(MockProfileRepository), new(MockTeamRepository))
		err := service.DeclineInvitation(context.Background(), inv.ID, invited)

		assert.NoError(t, err)
	})

	t.Run("accepted invitation cannot be declined", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		inv := pendingInvitation("invited@example.com")
		inv.Status = models.InvitationStatusAccepted
		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

		service := newInvitationService(mockInv, new(MockMemberRepository), new(MockProfileRepository), new(MockTeamRepository))
		err := service.DeclineInvitation(context.Background(), inv.ID, invited)

		assert.True(t, apperrors.HasCode(err, apperrors.ErrConflict))
	})

	t.Run("different email cannot decline", func(t *testing.T) {
		mockInv := new(MockInvitationRepository)
		inv := pendingInvitation("invited@example.com")
		mockInv.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)

		service := newInvitationService(mockInv, new(MockMemberRepository), new(MockProfileRepository), new(MockTeamRepository))
		err := service.DeclineInvitation(context.Background(), inv.ID, &models.Profile{ID: "U04OTHERUSER", Email: "other@example.com"})

		assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthorized))
	})
}
