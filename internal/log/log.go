package log

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup installs the global zap logger. With a file path set, JSON
// lines go to a rotated file while the console keeps the readable
// encoder.
func Setup(file string) {
	if file == "" {
		logger, err := zap.NewDevelopmentConfig().Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
		zap.ReplaceGlobals(logger)
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    32,
		MaxBackups: 7,
		MaxAge:     14,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotated),
			zap.InfoLevel,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zap.InfoLevel,
		),
	)
	zap.ReplaceGlobals(zap.New(core, zap.AddCaller()))
}

func write(level zapcore.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	kv := []zap.Field{zap.String("action", action)}
	if c != nil {
		kv = append(kv,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			kv = append(kv, zap.String("req_id", rid))
		}
	}
	if err != nil {
		kv = append(kv, zap.Error(err))
	}
	for k, v := range fields {
		kv = append(kv, zap.Any(k, v))
	}
	zap.L().Log(level, action, kv...)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zap.InfoLevel, c, action, nil, fields)
}

// Audit marks operator actions worth keeping in the trail.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zap.InfoLevel, c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zap.WarnLevel, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zap.ErrorLevel, c, action, err, fields)
}
