package services

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/hadirida46/house-hub-api/config"
	"github.com/hadirida46/house-hub-api/models"
	"github.com/hadirida46/house-hub-api/utils"
)

// fakeSender 捕获发出的邮件，代替真实SMTP
type fakeSender struct {
	mu   sync.Mutex
	sent []*gomail.Message
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m...)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// bodyOf 返回还原quoted-printable编码后的邮件内容
func (f *fakeSender) bodyOf(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var sb strings.Builder
	_, _ = f.sent[i].WriteTo(&sb)

	body := sb.String()
	body = strings.ReplaceAll(body, "=\r\n", "")
	body = strings.ReplaceAll(body, "=\n", "")
	return strings.ReplaceAll(body, "=3D", "=")
}

func newTestMailService(cfg *config.Config) (*MailService, *fakeSender) {
	sender := &fakeSender{}
	svc := &MailService{
		Config: cfg,
		sender: sender,
		queue:  make(chan *gomail.Message, mailQueueSize),
		done:   make(chan struct{}),
	}
	return svc, sender
}

func TestMailWorker_DrainsQueueAsynchronously(t *testing.T) {
	svc, sender := newTestMailService(testConfig())
	svc.Start()
	defer svc.Stop()

	user := &models.User{BaseModel: models.BaseModel{ID: 1}, Name: "jane", Email: "jane@example.com"}
	svc.SendVerificationMail(user)

	assert.Eventually(t, func() bool {
		return sender.count() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSendVerificationMail_LinkContainsIDAndHash(t *testing.T) {
	svc, sender := newTestMailService(testConfig())
	svc.Start()
	defer svc.Stop()

	user := &models.User{BaseModel: models.BaseModel{ID: 42}, Name: "jane", Email: "jane@example.com"}
	svc.SendVerificationMail(user)

	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 10*time.Millisecond)

	body := sender.bodyOf(0)
	assert.Contains(t, body, "/api/verify-email/42/"+utils.EmailVerificationHash("jane@example.com"))
}

func TestSendResidentInvite_CarriesPasswordAndLocation(t *testing.T) {
	svc, sender := newTestMailService(testConfig())
	svc.Start()
	defer svc.Stop()

	user := &models.User{BaseModel: models.BaseModel{ID: 9}, Name: "new", Email: "new@example.com"}
	svc.SendResidentInvite(user, "tempPass99", "Sunrise Hub", "Tower A", "A-301")

	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 10*time.Millisecond)

	body := sender.bodyOf(0)
	assert.Contains(t, body, "tempPass99")
	assert.Contains(t, body, "Sunrise Hub")
	assert.Contains(t, body, "Tower A")
	assert.Contains(t, body, "A-301")
}

func TestSendRoleInvite_PasswordBlockOnlyForNewAccounts(t *testing.T) {
	svc, sender := newTestMailService(testConfig())
	svc.Start()
	defer svc.Stop()

	svc.SendRoleInvite("new@example.com", "committee_member", "Sunrise Hub",
		"http://localhost:8080/api/accept-invite?email=new%40example.com&role=committee_member&househub_id=1",
		"new", "tempPass99")
	svc.SendRoleInvite("old@example.com", "janitor", "Sunrise Hub",
		"http://localhost:8080/api/accept-invite?email=old%40example.com&role=janitor&househub_id=1",
		"old", "")

	require.Eventually(t, func() bool { return sender.count() == 2 }, time.Second, 10*time.Millisecond)

	newBody := sender.bodyOf(0)
	assert.Contains(t, newBody, "tempPass99")
	assert.Contains(t, newBody, "accept-invite?email=new%40example.com")

	// 已有账号的邀请不携带密码段
	oldBody := sender.bodyOf(1)
	assert.NotContains(t, oldBody, "temporary password")
}

func TestEnqueue_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	svc, _ := newTestMailService(testConfig())
	// 不启动worker，队列只进不出

	user := &models.User{BaseModel: models.BaseModel{ID: 1}, Name: "jane", Email: "jane@example.com"}
	done := make(chan struct{})
	go func() {
		for i := 0; i < mailQueueSize+10; i++ {
			svc.SendVerificationMail(user)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on full queue")
	}
	assert.Len(t, svc.queue, mailQueueSize)
}
