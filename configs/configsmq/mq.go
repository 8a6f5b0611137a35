package configsmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// İş kuyruğu yalnızca yazma tarafıdır: cüzdan senkronu ve toplu e-posta
// mesajları buradan publish edilir, tüketen worker'lar bu projenin dışındadır.

const (
	ExchangeJobs = "kartvizit.jobs"

	RoutingKeyWalletSync = "jobs.wallet_sync"
	RoutingKeyBulkEmail  = "jobs.bulk_email"
)

var (
	conn        *amqp.Connection
	publisherCh *amqp.Channel
	pubMutex    sync.Mutex
)

// InitMQ RabbitMQ bağlantısını kurar ve jobs exchange'ini tanımlar.
func InitMQ() {
	c, err := amqp.Dial(configs.Cfg.GetMQURL())
	if err != nil {
		configslog.Log.Fatal("RabbitMQ bağlantısı kurulamadı", zap.Error(err))
	}
	conn = c

	ch, err := conn.Channel()
	if err != nil {
		configslog.Log.Fatal("RabbitMQ kanalı açılamadı", zap.Error(err))
	}
	if err := ch.ExchangeDeclare(ExchangeJobs, "topic", true, false, false, false, nil); err != nil {
		configslog.Log.Fatal("Jobs exchange tanımlanamadı", zap.Error(err))
	}
	_ = ch.Close()

	configslog.SLog.Infof("RabbitMQ bağlantısı kuruldu: %s", configs.Cfg.MQAddr)
}

func getPublisherChannel() (*amqp.Channel, error) {
	pubMutex.Lock()
	defer pubMutex.Unlock()

	if publisherCh != nil && !publisherCh.IsClosed() {
		return publisherCh, nil
	}
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq bağlantısı hazır değil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("publish kanalı açılamadı: %w", err)
	}
	publisherCh = ch
	return publisherCh, nil
}

// Publish verilen gövdeyi JSON olarak jobs exchange'ine yazar.
func Publish(routingKey string, body interface{}) error {
	ch, err := getPublisherChannel()
	if err != nil {
		return err
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("mesaj serileştirilemedi: %w", err)
	}

	err = ch.Publish(ExchangeJobs, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         bodyBytes,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("mesaj publish edilemedi: %w", err)
	}
	return nil
}

// CloseMQ kanal ve bağlantıyı kapatır.
func CloseMQ() {
	pubMutex.Lock()
	defer pubMutex.Unlock()
	if publisherCh != nil && !publisherCh.IsClosed() {
		_ = publisherCh.Close()
	}
	if conn != nil && !conn.IsClosed() {
		_ = conn.Close()
	}
}
