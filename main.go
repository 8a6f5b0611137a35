package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/configs/configsmq"
	"kartvizit.link/configs/configsredis"
	"kartvizit.link/routes"
	"kartvizit.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configs.LoadConfig()
	configslog.InitLogger(configs.Cfg.LogLevel, configs.Cfg.IsProduction())
	defer configslog.Sync()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	configsredis.InitRedis()
	defer configsredis.CloseRedis()

	configsmq.InitMQ()
	defer configsmq.CloseMQ()

	if err := utils.InitSerialNode(configs.Cfg.SnowflakeNodeID); err != nil {
		configslog.Log.Fatal("Seri kodu üreticisi başlatılamadı", zap.Error(err))
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		AppName:      "kartvizit.link",
		ErrorHandler: errorHandler,
	})

	app.Static("/uploads", "./uploads")

	routes.SetupRoutes(app)

	addr := fmt.Sprintf("%s:%s", configs.Cfg.ServerHost, configs.Cfg.ServerPort)

	// Graceful shutdown: SIGINT/SIGTERM geldiğinde açık istekler tamamlanır.
	shutdownDone := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		configslog.SLog.Infof("Kapatma sinyali alındı: %v", sig)
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
		close(shutdownDone)
	}()

	configslog.SLog.Infof("Sunucu dinlemede: %s", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	<-shutdownDone
	configslog.SLog.Info("Sunucu düzgün şekilde kapatıldı.")
}

// errorHandler yakalanmamış hataları içerik tipine göre cevaplar.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	configslog.Log.Error("İstek hatası", zap.Int("status", code), zap.String("path", c.Path()), zap.Error(err))

	if c.Accepts("application/json", "text/html") == "application/json" {
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(code).Render("errors/500", fiber.Map{
		"Title":   "Hata",
		"Message": "Beklenmeyen bir hata oluştu.",
	})
}
