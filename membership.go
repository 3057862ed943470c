package libpro

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// numberAttempts bounds the membership number collision loop. With 90000
// candidates per year the bound is never reached in practice; when it is,
// a sequence suffix disambiguates the last candidate.
const numberAttempts = 100

// Membership owns the member list and the single member considered logged
// in for this profile. Passwords are stored and compared as plain strings,
// the system models a cosmetic demo and promises no real security.
type Membership struct {
	mu      sync.Mutex
	kv      KV
	log     *logrus.Entry
	rng     *rand.Rand
	members []Member
	current *Member
}

// NewMembership restores the member list and the session member from kv.
// Corrupt or missing values count as empty.
func NewMembership(kv KV, logger *logrus.Entry) *Membership {
	m := &Membership{
		kv:  kv,
		log: logger,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if _, err := kv.Load(KeyMembers, &m.members); err != nil {
		m.log.WithField("err", err).Warning("could not restore members, starting empty")
		m.members = nil
	}

	var current Member
	found, err := kv.Load(KeyCurrentMember, &current)
	if err != nil {
		m.log.WithField("err", err).Warning("could not restore session member")
	}
	if found && err == nil {
		m.current = &current
	}

	return m
}

// Register creates a member, persists the list and logs the new member in.
// Name and email are required, the password is optional but must match its
// confirmation when given, and the email must not be registered yet.
func (m *Membership) Register(name, email, password, confirm string) (Member, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" {
		return Member{}, ErrMissingField
	}
	if password != "" && password != confirm {
		return Member{}, ErrPasswordMismatch
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.members {
		if existing.Email == email {
			return Member{}, ErrDuplicateEmail
		}
	}

	member := Member{
		MembershipNumber: m.newNumber(),
		Name:             name,
		Email:            email,
		Password:         password,
		RegisteredAt:     time.Now(),
	}
	m.members = append(m.members, member)
	m.persistMembers()

	m.setCurrent(member)
	m.log.WithFields(logrus.Fields{
		"membership": member.MembershipNumber,
		"email":      member.Email,
	}).Info("member registered")

	return member, nil
}

// Login looks the member up by membership number. A member without a
// password accepts any supplied password, including none.
func (m *Membership) Login(number, password string) (Member, error) {
	number = strings.TrimSpace(number)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, member := range m.members {
		if member.MembershipNumber != number {
			continue
		}
		if member.Password != "" && member.Password != password {
			return Member{}, ErrWrongPassword
		}
		m.setCurrent(member)
		m.log.WithField("membership", member.MembershipNumber).Info("member logged in")
		return member, nil
	}

	return Member{}, ErrMemberNotFound
}

// Logout clears the session member, also from storage.
func (m *Membership) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	if err := m.kv.Delete(KeyCurrentMember); err != nil {
		m.log.WithField("err", err).Warning("could not clear session member")
	}
}

// Current returns a copy of the logged in member, if any.
func (m *Membership) Current() (Member, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Member{}, false
	}
	return *m.current, true
}

// Members returns a copy of the member list.
func (m *Membership) Members() []Member {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Member, len(m.members))
	copy(out, m.members)
	return out
}

// setCurrent stores member as the session member by value, not as a live
// reference into the list. Callers hold the lock.
func (m *Membership) setCurrent(member Member) {
	m.current = &member
	if err := m.kv.Save(KeyCurrentMember, member); err != nil {
		m.log.WithField("err", err).Warning("could not persist session member")
	}
}

func (m *Membership) persistMembers() {
	if err := m.kv.Save(KeyMembers, m.members); err != nil {
		m.log.WithField("err", err).Warning("could not persist members")
	}
}

// newNumber generates a membership number of the form DLP-<year>-<5
// digits> that no existing member carries. Callers hold the lock.
func (m *Membership) newNumber() string {
	year := time.Now().Year()
	var candidate string
	for i := 0; i < numberAttempts; i++ {
		candidate = fmt.Sprintf("DLP-%d-%05d", year, 10000+m.rng.Intn(90000))
		if !m.numberTaken(candidate) {
			return candidate
		}
	}
	// pathologically full number space, disambiguate the last candidate
	return fmt.Sprintf("%s-%d", candidate, len(m.members))
}

func (m *Membership) numberTaken(number string) bool {
	for _, member := range m.members {
		if member.MembershipNumber == number {
			return true
		}
	}
	return false
}
